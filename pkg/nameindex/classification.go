package nameindex

import (
	"log/slog"
	"slices"

	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// denormalize walks up parent links and returns the classification of a
// usage from the root down. Synonyms start the walk at their accepted
// usage, so their own name is not part of the classification. A visited set
// stops the walk on cyclic data.
func (ni *NameIndex) denormalize(u usage.NameUsage) []usage.RankedName {
	var res []usage.RankedName
	visited := make(map[string]struct{})

	currID := u.ID
	if u.Kind() == usage.Synonym {
		currID = u.AcceptedKey()
	}

	for currID != "" {
		if _, ok := visited[currID]; ok {
			slog.Warn("Circular parent reference", "id", u.ID, "node", currID)
			break
		}
		visited[currID] = struct{}{}

		i, ok := ni.byID[currID]
		if !ok {
			slog.Debug("Missing parent", "id", u.ID, "node", currID)
			break
		}
		node := ni.docs[i].NameUsage
		if node.Status.IsAccepted() {
			res = append(res, usage.RankedName{
				Key:  node.ID,
				Name: node.Name(),
				Rank: node.Rank,
			})
		}
		currID = node.ParentID
		if node.Kind() == usage.Synonym {
			currID = node.AcceptedKey()
		}
	}
	slices.Reverse(res)
	return res
}
