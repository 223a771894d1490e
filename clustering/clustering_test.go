package clustering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lociprox/clustering"
	"github.com/katalvlaran/lociprox/core"
)

func graph(t *testing.T, isolated []string, edges ...[2]string) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithWeighted())
	for _, v := range isolated {
		require.NoError(t, g.AddVertex(v))
	}
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1], 1)
		require.NoError(t, err)
	}

	return g
}

func TestNilGraph(t *testing.T) {
	_, err := clustering.Local(nil)
	assert.ErrorIs(t, err, clustering.ErrGraphNil)
	_, err = clustering.Average(nil)
	assert.ErrorIs(t, err, clustering.ErrGraphNil)
	_, err = clustering.Density(nil)
	assert.ErrorIs(t, err, clustering.ErrGraphNil)
}

func TestEmptyAndSingleton(t *testing.T) {
	for _, g := range []*core.Graph{core.NewGraph(), graph(t, []string{"a"})} {
		avg, err := clustering.Average(g)
		require.NoError(t, err)
		assert.Zero(t, avg)
		d, err := clustering.Density(g)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestTriangle(t *testing.T) {
	g := graph(t, nil, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})
	avg, err := clustering.Average(g)
	require.NoError(t, err)
	assert.Equal(t, 1.0, avg)
	d, err := clustering.Density(g)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}

// Triangle a-b-c plus pendant c-d: c(a)=c(b)=1, c(c)=1/3, c(d)=0.
func TestPaw(t *testing.T) {
	g := graph(t, nil, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"}, [2]string{"c", "d"})
	local, err := clustering.Local(g)
	require.NoError(t, err)
	assert.Equal(t, 1.0, local["a"])
	assert.Equal(t, 1.0, local["b"])
	assert.InDelta(t, 1.0/3.0, local["c"], 1e-12)
	assert.Equal(t, 0.0, local["d"])

	avg, err := clustering.Average(g)
	require.NoError(t, err)
	assert.InDelta(t, (1+1+1.0/3.0)/4, avg, 1e-12)

	d, err := clustering.Density(g)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/12.0, d, 1e-12)
}

// Two disjoint pairs: no triangles, density 2·2/(4·3).
func TestTwoPairs(t *testing.T) {
	g := graph(t, nil, [2]string{"p0", "p1"}, [2]string{"p2", "p3"})
	avg, err := clustering.Average(g)
	require.NoError(t, err)
	assert.Zero(t, avg)
	d, err := clustering.Density(g)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, d, 1e-12)
}
