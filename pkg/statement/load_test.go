package statement

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOpen_LocalCatalog(t *testing.T) {
	path := writeWorkbook(t, catalogRows)

	catalog, err := Open(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "catalog.xlsx", catalog.Source)
	assert.Equal(t, "Sheet1", catalog.Sheet)
	assert.Equal(t, []string{"Bonos Soberanos", "Acciones"}, catalog.Groups())

	instruments := catalog.Instruments()
	require.Len(t, instruments, 4)
	assert.Equal(t, "Bonar 2030", instruments[0].Name)
	assert.Equal(t, "AL30", instruments[0].Ticker)
	assert.Equal(t, "Bonos Soberanos", instruments[1].Group)
	assert.Equal(t, "Acciones", instruments[3].Group)
	assert.Equal(t, "Merval", instruments[3].BenchmarkSpecific)
}

func TestOpen_HeaderBelowTitle(t *testing.T) {
	rows := append([][]interface{}{{"Catálogo de activos"}, {}}, catalogRows...)
	path := writeWorkbook(t, rows)

	catalog, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Len(t, catalog.Instruments(), 4)
	assert.Equal(t, []string{"Bonos Soberanos", "Acciones"}, catalog.Groups())
}

func TestOpen_ExplicitLayoutAndPrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"ignored", "Activo", "Moneda"},
		{"ignored", "Bonos"},
		{"ignored", "AL30", "ARS"},
		{"outside", "GD30", "USD"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     parser.PrintAreaName,
		RefersTo: "'Sheet1'!$B$1:$C$3",
		Scope:    "Sheet1",
	}))
	path := filepath.Join(t.TempDir(), "area.xlsx")
	require.NoError(t, f.SaveAs(path))

	layout := parser.Layout{
		HeaderRows:        1,
		UsePrintArea:      true,
		Name:              0,
		Currency:          1,
		Ticker:            parser.NoColumn,
		BenchmarkSpecific: parser.NoColumn,
		BenchmarkGeneral:  parser.NoColumn,
		Nominal:           parser.NoColumn,
		Price:             parser.NoColumn,
		Group:             parser.GroupRule{Label: 0},
	}
	catalog, err := Open(context.Background(), path, &layout)
	require.NoError(t, err)

	instruments := catalog.Instruments()
	require.Len(t, instruments, 1)
	assert.Equal(t, "AL30", instruments[0].Name)
	assert.Equal(t, "Bonos", instruments[0].Group)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "read", srcErr.Stage)
}

func TestOpen_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("Activo,Moneda\n"), 0o644))

	_, err := Open(context.Background(), path, nil)
	assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
}

func TestOpen_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, catalogRows)
	layout := parser.DefaultLayout()
	layout.Sheet = "Cartera"

	_, err := Open(context.Background(), path, &layout)
	assert.True(t, errors.Is(err, ErrSheetNotFound), "got %v", err)
}

func TestLoader_Remote(t *testing.T) {
	data := workbookBytes(t, catalogRows)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/catalog.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	client := NewHTTPClient(zerolog.Nop())
	client.RetryMax = 0
	l := &Loader{Cache: NewCache(), Client: client}
	ctx := context.Background()

	catalog, err := l.Load(ctx, srv.URL+"/catalog.xlsx")
	require.NoError(t, err)
	assert.Len(t, catalog.Instruments(), 4)

	again, err := l.Load(ctx, srv.URL+"/catalog.xlsx")
	require.NoError(t, err)
	assert.Same(t, catalog, again)
	assert.Equal(t, int32(1), hits.Load(), "second load must come from the cache")

	_, err = l.Load(ctx, srv.URL+"/missing.xlsx")
	assert.True(t, errors.Is(err, ErrSourceNotFound), "got %v", err)
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "fetch", srcErr.Stage)
}

func TestLoader_RemoteTooLarge(t *testing.T) {
	data := workbookBytes(t, catalogRows)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	client := NewHTTPClient(zerolog.Nop())
	client.RetryMax = 0
	l := &Loader{Client: client, MaxSize: int64(len(data)) - 1}

	_, err := l.Load(context.Background(), srv.URL+"/catalog.xlsx")
	assert.True(t, errors.Is(err, ErrSourceTooLarge), "got %v", err)
	assert.False(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "fetch", srcErr.Stage)

	// A response of exactly MaxSize bytes is accepted
	l.MaxSize = int64(len(data))
	catalog, err := l.Load(context.Background(), srv.URL+"/catalog.xlsx")
	require.NoError(t, err)
	assert.Len(t, catalog.Instruments(), 4)
}

func TestLoader_CacheFollowsFileContent(t *testing.T) {
	path := writeWorkbook(t, catalogRows)
	cache := NewCache()
	l := &Loader{Cache: cache}
	ctx := context.Background()

	first, err := l.Load(ctx, path)
	require.NoError(t, err)
	second, err := l.Load(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	// Rewriting the file changes its identity
	require.NoError(t, os.WriteFile(path, workbookBytes(t, catalogRows[:4]), 0o644))
	third, err := l.Load(ctx, path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Len(t, third.Instruments(), 2)
	assert.Equal(t, 2, cache.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, cache.Invalidate(ContentKey(data)))
	assert.False(t, cache.Invalidate(ContentKey(data)))
	assert.Equal(t, 1, cache.Len())
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/base.xlsx"))
	assert.True(t, IsRemote("HTTP://example.com/base.xlsx"))
	assert.False(t, IsRemote("/tmp/base.xlsx"))
	assert.False(t, IsRemote("base.xlsx"))
}
