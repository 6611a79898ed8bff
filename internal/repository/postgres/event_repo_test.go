package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventify/internal/domain"
)

// docTitle matches a JSONB argument whose title equals the given value.
type docTitle string

func (d docTitle) Match(v driver.Value) bool {
	raw, ok := v.([]byte)
	if !ok {
		return false
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false
	}
	return doc.Title == string(d)
}

func docJSON(t *testing.T, title string, tags ...string) []byte {
	t.Helper()
	b, err := json.Marshal(document{
		Title:     title,
		Date:      "2024-01-01",
		Host:      "Go Meetup",
		EventTags: tags,
		Speakers:  []string{"Ada"},
	})
	require.NoError(t, err)
	return b
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name:  "success",
			event: &domain.Event{Title: "Tech Talk", EventTags: []string{"go"}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events \(id, doc\) VALUES \(\$1, \$2\)`).
					WithArgs(sqlmock.AnyArg(), docTitle("Tech Talk")).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name:  "db error",
			event: &domain.Event{Title: "Tech Talk"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, tt.event.ID)
				return
			}
			require.NoError(t, err)
			_, err = uuid.Parse(tt.event.ID)
			require.NoError(t, err, "id must be a uuid")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(t *testing.T, mock sqlmock.Sqlmock)
		want    []string
		wantErr bool
	}{
		{
			name: "success multiple",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "doc"}).
					AddRow("ev-1", docJSON(t, "Tech Talk", "go")).
					AddRow("ev-2", docJSON(t, "Design Jam", "ux"))
				mock.ExpectQuery(`SELECT id, doc FROM events ORDER BY created_at, id`).
					WillReturnRows(rows)
			},
			want:    []string{"Tech Talk", "Design Jam"},
			wantErr: false,
		},
		{
			name: "success empty",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, doc FROM events`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}))
			},
			want:    []string{},
			wantErr: false,
		},
		{
			name: "corrupt document",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, doc FROM events`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).AddRow("ev-1", []byte(`{not json`)))
			},
			wantErr: true,
		},
		{
			name: "db error",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, doc FROM events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(t, mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			titles := make([]string, 0, len(got))
			for _, e := range got {
				titles = append(titles, e.Title)
			}
			require.Equal(t, tt.want, titles)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByTitle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		mock    func(t *testing.T, mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name:  "found",
			title: "Tech Talk",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, doc\s+FROM events\s+WHERE doc->>'title' = \$1`).
					WithArgs("Tech Talk").
					WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).AddRow("ev-1", docJSON(t, "Tech Talk", "go")))
			},
			wantID: "ev-1",
		},
		{
			name:  "not found",
			title: "tech talk",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE doc->>'title' = \$1`).
					WithArgs("tech talk").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:  "db error",
			title: "Tech Talk",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE doc->>'title' = \$1`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(t, mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByTitle(ctx, tt.title)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, []string{"Ada"}, got.Speakers)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListByTag(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE doc->'eventTags' @> jsonb_build_array\(\$1::text\)`).
		WithArgs("go").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).
			AddRow("ev-1", docJSON(t, "Tech Talk", "go", "backend")))
	mock.ExpectQuery(`WHERE doc->'eventTags' @> jsonb_build_array\(\$1::text\)`).
		WithArgs("rust").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}))

	repo := NewEventRepository(db)
	got, err := repo.ListByTag(ctx, "go")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"go", "backend"}, got[0].EventTags)

	got, err = repo.ListByTag(ctx, "rust")
	require.NoError(t, err)
	assert.Equal(t, []*domain.Event{}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	id := "5b0e3c5c-3d0f-4a52-9f55-0e5c1c2d7a11"

	tests := []struct {
		name    string
		id      string
		mock    func(t *testing.T, mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			id:   id,
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`DELETE FROM events WHERE id = \$1 RETURNING id, doc`).
					WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).AddRow(id, docJSON(t, "Tech Talk")))
			},
		},
		{
			name: "not found",
			id:   id,
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`DELETE FROM events`).
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "malformed id",
			id:   "abc",
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`DELETE FROM events`).
					WithArgs("abc").
					WillReturnError(&pq.Error{Code: pgInvalidTextRepresentation, Message: `invalid input syntax for type uuid: "abc"`})
			},
			wantErr: domain.ErrInvalidID,
		},
		{
			name: "db error",
			id:   id,
			mock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`DELETE FROM events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(t, mock)
			repo := NewEventRepository(db)
			got, err := repo.DeleteByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, "Tech Talk", got.Title)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInitDB(t *testing.T) {
	t.Run("ping and ensure table", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS events`).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, initDB(context.Background(), db, time.Second))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping failure", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing().WillReturnError(sql.ErrConnDone)

		err = initDB(context.Background(), db, time.Second)
		require.ErrorIs(t, err, sql.ErrConnDone)
		assert.Contains(t, err.Error(), "ping")
	})
}
