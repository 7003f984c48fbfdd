package snapshot

import (
	"testing"

	"github.com/basm-script/bscp/pkg/script/parser"
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/basm-script/bscp/pkg/storage/store"
	"github.com/basm-script/bscp/pkg/storage/store/bg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRestore(t *testing.T) {
	assert := assert.New(t)

	db, err := bg.New(t.TempDir(), nil)
	require.NoError(t, err)
	defer db.Close()

	root := program(t, `a = 1
p = { q = "s" }`)
	require.NoError(t, Save(db, "one", root))
	require.NoError(t, Save(db, "two", value.NewObject(root)))

	names, err := List(db)
	require.NoError(t, err)
	assert.Equal([]string{"one", "two"}, names)

	in := parser.New()
	_, err = in.Eval("a = 5\nb = 2")
	require.NoError(t, err)
	require.NoError(t, Restore(db, "one", in.Root()))
	assert.Equal(`{a: 1, b: 2, p: {q: "s"}}`, Format(in.Root()))

	p, _ := in.Root().Field("p")
	assert.Same(in.Root(), p.Value.Owner())

	v, err := in.Eval("p.q[0] + a")
	require.NoError(t, err)
	assert.Equal(float64('s')+1, v.Float())

	bin := program(t, `raw = "\x80\x01"`)
	require.NoError(t, Save(db, "bin", bin))
	dst := value.NewRoot()
	require.NoError(t, Restore(db, "bin", dst))
	raw, ok := dst.Field("raw")
	require.True(t, ok)
	text, err := raw.Value.Text()
	require.NoError(t, err)
	assert.Equal("\x80\x01", text)

	require.NoError(t, Delete(db, "two"))
	_, err = Load(db, "two", in.Root())
	assert.Equal(store.NotExist, err)
}
