package migrations_test

import (
	"testing"
	"testing/fstest"

	"github.com/nikolayk812/shop-pricing/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		fsys      fstest.MapFS
		want      []migrations.Migration
		wantError string
	}{
		{
			name: "two versions out of order: sorted",
			fsys: fstest.MapFS{
				"02_events.up.sql":   {Data: []byte("CREATE TABLE b (id INT);")},
				"02_events.down.sql": {Data: []byte("DROP TABLE b;")},
				"01_items.up.sql":    {Data: []byte(" CREATE TABLE a (id INT);\n")},
				"01_items.down.sql":  {Data: []byte("DROP TABLE a;")},
			},
			want: []migrations.Migration{
				{Version: 1, Name: "items", UpSQL: "CREATE TABLE a (id INT);", DownSQL: "DROP TABLE a;"},
				{Version: 2, Name: "events", UpSQL: "CREATE TABLE b (id INT);", DownSQL: "DROP TABLE b;"},
			},
		},
		{
			name:      "no files: error",
			fsys:      fstest.MapFS{},
			wantError: "no migration files found",
		},
		{
			name: "missing down: error",
			fsys: fstest.MapFS{
				"01_items.up.sql": {Data: []byte("CREATE TABLE a (id INT);")},
			},
			wantError: "migration 1_items must have both up and down files",
		},
		{
			name: "invalid file name: error",
			fsys: fstest.MapFS{
				"items.sql": {Data: []byte("SELECT 1;")},
			},
			wantError: "migration file name[items.sql] is not valid",
		},
		{
			name: "empty file: error",
			fsys: fstest.MapFS{
				"01_items.up.sql":   {Data: []byte("  ")},
				"01_items.down.sql": {Data: []byte("DROP TABLE a;")},
			},
			wantError: "migration file[01_items.up.sql] is empty",
		},
		{
			name: "name mismatch: error",
			fsys: fstest.MapFS{
				"01_items.up.sql":    {Data: []byte("CREATE TABLE a (id INT);")},
				"01_things.down.sql": {Data: []byte("DROP TABLE a;")},
			},
			wantError: "migration version[1] has names items and things",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := migrations.Load(tt.fsys)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
		})
	}
}
