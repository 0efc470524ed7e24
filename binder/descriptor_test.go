package binder_test

import (
	"bytes"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/querybind/binder"
)

func TestFields(t *testing.T) {
	t.Parallel()

	fields, err := binder.FieldsOf[listQuery]()
	require.NoError(t, err)
	require.Len(t, fields, 5)

	type summary struct {
		Name, External, Default string
		HasDefault, Nullable    bool
		Kind                    binder.Kind
		Shape                   binder.Shape
	}
	got := make([]summary, 0, len(fields))
	for _, f := range fields {
		got = append(got, summary{f.Name, f.ExternalName, f.Default, f.HasDefault, f.Nullable, f.Kind, f.Shape})
	}

	assert.Equal(t, []summary{
		{"Page", "page", "0", true, false, binder.KindInt, binder.ShapeScalar},
		{"PageSize", "pageSize", "20", true, false, binder.KindInt, binder.ShapeScalar},
		{"Search", "search", "", false, true, binder.KindString, binder.ShapeScalar},
		{"SortBy", "sort", "", false, true, binder.KindString, binder.ShapeScalar},
		{"IsAscending", "isAscending", "true", true, false, binder.KindBool, binder.ShapeScalar},
	}, got)
}

func TestFields_Sequences(t *testing.T) {
	t.Parallel()

	fields, err := binder.FieldsOf[sequenceQuery]()
	require.NoError(t, err)

	byName := make(map[string]binder.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Equal(t, binder.ShapeSequence, byName["IDs"].Shape)
	assert.Equal(t, binder.ContainerSlice, byName["IDs"].Container)
	assert.Equal(t, binder.KindInt, byName["IDs"].Kind)
	assert.Equal(t, binder.KindUUID, byName["Refs"].Kind)
	assert.True(t, byName["Maybe"].Nullable)
	assert.Equal(t, binder.ContainerArray, byName["Corners"].Container)
}

func TestFields_DefaultNames(t *testing.T) {
	t.Parallel()

	type names struct {
		binder.Model
		ID        string
		IDs       []string
		URLPath   string
		PageSize  int
		Q         string
		CreatedAt time.Time
		IDsList   []string
		URLsCount int
		HTTPSOnly bool
	}

	fields, err := binder.FieldsOf[names]()
	require.NoError(t, err)

	var external []string
	for _, f := range fields {
		external = append(external, f.ExternalName)
	}
	assert.Equal(t, []string{"id", "ids", "urlPath", "pageSize", "q", "createdAt", "idsList", "urlsCount", "httpsOnly"}, external)
}

func TestFields_PointerType(t *testing.T) {
	t.Parallel()

	fields, err := binder.Default().Fields(reflect.TypeFor[*listQuery]())
	require.NoError(t, err)
	assert.Len(t, fields, 5)

	_, err = binder.Default().Fields(nil)
	assert.ErrorIs(t, err, binder.ErrInvalidTarget)
}

func TestFields_ReturnsCopy(t *testing.T) {
	t.Parallel()

	fields, err := binder.FieldsOf[listQuery]()
	require.NoError(t, err)
	fields[0].ExternalName = "mutated"

	again, err := binder.FieldsOf[listQuery]()
	require.NoError(t, err)
	assert.Equal(t, "page", again[0].ExternalName)
}

func TestFields_NameCollision(t *testing.T) {
	t.Parallel()

	type collision struct {
		binder.Model
		Name  string
		Title string `query:"NAME"`
	}

	_, err := binder.FieldsOf[collision]()
	require.Error(t, err)
	assert.ErrorIs(t, err, binder.ErrNameCollision)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Title")

	_, err = binder.Bind[collision](url.Values{"name": {"x"}})
	assert.ErrorIs(t, err, binder.ErrNameCollision)
}

func TestFields_InvalidDefault(t *testing.T) {
	t.Parallel()

	type badDefault struct {
		binder.Model
		Page int `query:"page" default:"first"`
	}

	_, err := binder.FieldsOf[badDefault]()
	require.Error(t, err)
	assert.ErrorIs(t, err, binder.ErrInvalidDefault)
	assert.Contains(t, err.Error(), "Page")
	assert.Contains(t, err.Error(), `field page: expected integer, got "first"`)

	var convErr *binder.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "page", convErr.Field)
	assert.Equal(t, "first", convErr.Value)
}

func TestFields_UnsupportedShape(t *testing.T) {
	t.Parallel()

	type withMap struct {
		binder.Model
		Name    string
		Filter  map[string]string
		Nested  struct{ A int }
		Matrix  [][]int
		Handler func()
	}

	t.Run("skipped with a warning", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		b := newTestBinder(buf)

		fields, err := b.Fields(reflect.TypeFor[withMap]())
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "Name", fields[0].Name)

		logs := buf.String()
		assert.Contains(t, logs, "query model field skipped")
		assert.Contains(t, logs, `"field":"Filter"`)
		assert.Contains(t, logs, `"field":"Nested"`)
		assert.Contains(t, logs, `"field":"Matrix"`)
		assert.Contains(t, logs, `"field":"Handler"`)
		assert.Contains(t, logs, `"component":"binder"`)
	})

	t.Run("skipped fields stay zero", func(t *testing.T) {
		t.Parallel()
		b := newTestBinder(&bytes.Buffer{})
		v, err := binder.BindWith[withMap](b, url.Values{"name": {"n"}, "filter": {"x"}})
		require.NoError(t, err)
		assert.Equal(t, "n", v.Name)
		assert.Nil(t, v.Filter)
	})

	t.Run("strict shapes reject the type", func(t *testing.T) {
		t.Parallel()
		b := newTestBinder(nil, binder.WithStrictShapes())

		_, err := b.Fields(reflect.TypeFor[withMap]())
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrUnsupportedShape)
		assert.Contains(t, err.Error(), "Filter")
	})
}

func TestFields_CustomTagName(t *testing.T) {
	t.Parallel()

	type formLike struct {
		binder.Model
		Page int `param:"p"`
	}

	b := binder.New(binder.WithTagName("param"))
	v, err := binder.BindWith[formLike](b, url.Values{"p": {"4"}})
	require.NoError(t, err)
	assert.Equal(t, 4, v.Page)

	assert.Panics(t, func() { binder.WithTagName("") })
}

func TestFields_RegistrationResetsCache(t *testing.T) {
	t.Parallel()

	type pointQuery struct {
		binder.Model
		Name   string
		Origin Point `query:"origin"`
	}

	b := binder.New(binder.WithLogger(newDiscardLogger()))

	fields, err := b.Fields(reflect.TypeFor[pointQuery]())
	require.NoError(t, err)
	assert.Len(t, fields, 1)

	binder.WithConverter(parsePoint)(b)

	fields, err = b.Fields(reflect.TypeFor[pointQuery]())
	require.NoError(t, err)
	assert.Len(t, fields, 2)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int", binder.KindInt.String())
	assert.Equal(t, "uuid", binder.KindUUID.String())
	assert.Equal(t, "invalid", binder.Kind(200).String())
	assert.Equal(t, "sequence", binder.ShapeSequence.String())
}
