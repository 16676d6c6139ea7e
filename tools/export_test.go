package tools

import (
	"context"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"github.com/streamingfast/dstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	st, err := store.Open("", true)
	require.NoError(t, err)
	defer st.Close()

	tx := st.Begin()
	require.NoError(t, store.Tags.Save(tx, "1", &model.Tag{ID: "1", Display: "#Love", OwnerRevenue: big.NewInt(5)}))
	require.NoError(t, store.Tags.Save(tx, "2", &model.Tag{ID: "2", Display: "#Peace"}))
	require.NoError(t, store.Taggers.Save(tx, "0x01", &model.Tagger{ID: "0x01"}))
	require.NoError(t, tx.Commit())

	dir := t.TempDir()
	out, err := dstore.NewStore("file://"+dir, "", "", true)
	require.NoError(t, err)

	ctx := context.Background()
	counts, err := Export(ctx, st, out, []string{model.KindTag, model.KindAuction})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{model.KindTag: 2}, counts)

	reader, err := out.OpenObject(ctx, ExportFileName(model.KindTag))
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"display":"#Love"`)
	assert.Contains(t, lines[1], `"display":"#Peace"`)

	exists, err := out.FileExists(ctx, ExportFileName(model.KindAuction))
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = Export(ctx, st, out, []string{"Unicorn"})
	assert.EqualError(t, err, `unknown entity kind "Unicorn"`)
}
