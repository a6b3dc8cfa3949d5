package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/discrepometro/internal/store"
)

type widget struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

func (w widget) Fields() map[string]any {
	return map[string]any{"id": w.ID, "nome": w.Nome}
}

var widgets = store.TableSpec{Name: "widgets", Columns: []string{"id", "nome"}, Order: "nome"}

func newTestTable(t *testing.T, handler http.HandlerFunc) *Table[widget] {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTable[widget](NewClient(Config{URL: srv.URL, APIKey: "anon-key"}), widgets)
}

func TestTable_ListSendsFiltersAndAuth(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/widgets", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.Acme", r.URL.Query().Get("nome"))
		assert.Equal(t, "nome.asc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","nome":"Acme"}]`))
	})

	rows, err := table.List(context.Background(), store.Filter{}.Where("nome", store.OpEq, "Acme"))

	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: "1", Nome: "Acme"}}, rows)
}

func TestTable_ListRejectsUnknownColumn(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := table.List(context.Background(), store.Filter{}.Where("senha", store.OpEq, "x"))

	assert.ErrorIs(t, err, store.ErrInvalidColumn)
}

func TestTable_GetEmptyRepresentationIsNotFound(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.missing", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	row, err := table.Get(context.Background(), "missing")

	assert.Nil(t, row)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTable_InsertSendsBatchInOneRequest(t *testing.T) {
	calls := 0
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		var sent []widget
		require.NoError(t, json.Unmarshal(body, &sent))
		assert.Len(t, sent, 2)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})

	rows, err := table.Insert(context.Background(), []widget{{ID: "1", Nome: "A"}, {ID: "2", Nome: "B"}})

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, calls)
}

func TestTable_InsertDecodesAPIError(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value","details":null,"hint":null}`))
	})

	_, err := table.Insert(context.Background(), []widget{{ID: "1", Nome: "A"}})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "23505", apiErr.Code)
}

func TestTable_UpdateRejectsIDColumn(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := table.Update(context.Background(), "1", store.Patch{"id": "2"})

	assert.ErrorIs(t, err, store.ErrInvalidColumn)
}

func TestTable_UpdateReturnsRow(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.1", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","nome":"Novo"}]`))
	})

	row, err := table.Update(context.Background(), "1", store.Patch{"nome": "Novo"})

	require.NoError(t, err)
	assert.Equal(t, "Novo", row.Nome)
}

func TestTable_DeleteMissingRecordIsNotFound(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	err := table.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "2021-02-01", formatValue(store.NewDate(2021, 2, 1)))
	assert.Equal(t, "12.5", formatValue(12.5))
	assert.Equal(t, "entrada", formatValue("entrada"))
}

func TestTable_DeleteMalformedIDIsNotFound(t *testing.T) {
	table := newTestTable(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type uuid: \"abc\""}`))
	})

	err := table.Delete(context.Background(), "abc")

	assert.ErrorIs(t, err, store.ErrNotFound)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func invalidTextHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type uuid: \"abc\""}`))
}

func TestTable_UpdateBadValueIsInvalid(t *testing.T) {
	table := newTestTable(t, invalidTextHandler)

	_, err := table.Update(context.Background(), "0b7f3a52-8c1e-4d2a-9f61-3c5e7a9b1d20", store.Patch{"nome": "abc"})

	assert.ErrorIs(t, err, store.ErrInvalidValue)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestTable_InsertBadValueIsInvalid(t *testing.T) {
	table := newTestTable(t, invalidTextHandler)

	_, err := table.Insert(context.Background(), []widget{{ID: "0b7f3a52-8c1e-4d2a-9f61-3c5e7a9b1d20", Nome: "Acme"}})

	assert.ErrorIs(t, err, store.ErrInvalidValue)
}
