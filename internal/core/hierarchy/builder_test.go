package hierarchy

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okatech-org/admin.ga-sub001/internal/core/coretest"
	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/core/relation"
)

func ids(forest model.Forest) map[string]int {
	seen := make(map[string]int)
	forest.Walk(func(n *model.Node) bool {
		seen[n.Entity.ID]++
		return true
	})
	return seen
}

func TestBuildForest_SingleRoot(t *testing.T) {
	forest := BuildForest([]model.EntityRecord{{ID: "P"}})

	require.Len(t, forest.Roots, 1)
	assert.Equal(t, "P", forest.Roots[0].Entity.ID)
	assert.Empty(t, forest.Roots[0].Children)
	assert.Empty(t, forest.Detached)
}

func TestBuildForest_Registry(t *testing.T) {
	forest := BuildForest(coretest.Registry())

	require.Len(t, forest.Roots, 1)
	root := forest.Roots[0]
	assert.Equal(t, "PR", root.Entity.ID)
	assert.Equal(t, 10, forest.Count())
	assert.Equal(t, 4, forest.MaxDepth())

	mint, ok := forest.Find("MINT")
	require.True(t, ok)
	assert.Equal(t, 2, mint.Depth)

	var children []string
	for _, c := range mint.Children {
		children = append(children, c.Entity.ID)
	}
	// Child order follows input order.
	assert.Equal(t, []string{"SG-MINT", "DGDI", "GOV-HO", "MAIRIE-POG"}, children)
}

func TestBuildForest_BrokenDataPlacesEveryEntityOnce(t *testing.T) {
	entities := coretest.Broken()
	forest := BuildForest(entities)

	seen := ids(forest)
	for _, e := range entities {
		assert.Equal(t, 1, seen[e.ID], "entity %s", e.ID)
	}
	// One record per distinct id.
	assert.Equal(t, 15, forest.Count())

	// Orphan, cycle entry point and self-parent become detached roots.
	assert.Equal(t, []string{"DIR-X", "CYC-A", "SELF"}, forest.Detached)

	cycA, ok := forest.Find("CYC-A")
	require.True(t, ok)
	assert.Equal(t, 0, cycA.Depth)
	require.Len(t, cycA.Children, 1)
	cycB := cycA.Children[0]
	assert.Equal(t, "CYC-B", cycB.Entity.ID)
	require.Len(t, cycB.Children, 1)
	assert.Equal(t, "CYC-CHILD", cycB.Children[0].Entity.ID)

	self, ok := forest.Find("SELF")
	require.True(t, ok)
	assert.Empty(t, self.Children)
}

func TestBuildForest_DoesNotModifyInput(t *testing.T) {
	entities := coretest.Broken()
	before := append([]model.EntityRecord(nil), entities...)
	_ = BuildForest(entities)
	assert.Equal(t, before, entities)
}

func TestBuildForest_RandomSnapshots(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(60)
		entities := make([]model.EntityRecord, n)
		for i := range entities {
			e := model.EntityRecord{ID: fmt.Sprintf("E%d", i)}
			switch rng.Intn(4) {
			case 0:
				// root
			case 1:
				e.ParentID = fmt.Sprintf("MISSING%d", i)
			default:
				e.ParentID = fmt.Sprintf("E%d", rng.Intn(n))
			}
			entities[i] = e
		}

		forest := BuildForest(entities)
		seen := ids(forest)
		require.Len(t, seen, n, "round %d", round)
		for id, count := range seen {
			require.Equal(t, 1, count, "round %d entity %s", round, id)
		}
	}
}

func TestEdgesAndFlatten(t *testing.T) {
	forest := BuildForest(coretest.Registry())

	edges := Edges(forest)
	assert.Len(t, edges, 9)
	assert.Contains(t, edges, model.Edge{ParentID: "GOV-HO", ChildID: "PREF-PASSA"})

	flat := Flatten(forest)
	assert.Len(t, flat, 10)
	assert.Equal(t, "PR", flat[0].ID)
	assert.Empty(t, flat[0].ParentID)
}

func TestRoundTrip_RelationsRebuildSameEdges(t *testing.T) {
	for name, entities := range map[string][]model.EntityRecord{
		"registry": coretest.Registry(),
		"grid":     coretest.Grid(30, 5),
		"broken":   coretest.Broken(),
	} {
		t.Run(name, func(t *testing.T) {
			forest := BuildForest(entities)
			relations := relation.DeriveRelations(Flatten(forest))
			rebuilt := BuildFromRelations(entities, relations)

			assert.ElementsMatch(t, Edges(forest), Edges(rebuilt))
			assert.Equal(t, forest.Count(), rebuilt.Count())
		})
	}
}
