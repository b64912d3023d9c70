package assistant

import (
	"strings"

	"kingraph/backend/internal/graph"
)

// interestCategory maps a category label to the keywords that place a
// person's free-text info in it
type interestCategory struct {
	Name     string
	Keywords []string
}

// interestCategories is static configuration data. Declaration order is
// rendering order, so output stays reproducible.
var interestCategories = []interestCategory{
	{"hiking", []string{"hiking", "hike", "outdoor"}},
	{"photography", []string{"photography", "photo", "camera"}},
	{"coffee", []string{"coffee", "cafe", "espresso"}},
	{"tech", []string{"tech", "programming", "programmer", "developer", "software", "computer"}},
	{"travel", []string{"travel", "traveler", "world", "countries"}},
	{"music", []string{"music", "guitar", "musician", "instrument", "song"}},
	{"art", []string{"paint", "painting", "art", "artist", "draw", "creative"}},
	{"sports", []string{"sport", "athlete", "basketball", "pickleball", "cycling", "cyclist"}},
	{"food", []string{"chef", "cooking", "food", "culinary", "recipe"}},
	{"reading", []string{"read", "reader", "book", "sci-fi", "literature"}},
	{"games", []string{"chess", "game", "gaming"}},
	{"science", []string{"scientist", "data", "graph theory", "research"}},
}

// interestCluster is a derived grouping; recomputed per query, never stored
type interestCluster struct {
	Category string
	People   []string
}

// clusterInterests matches each person's info text against the category
// table. Categories with no matches are omitted.
func clusterInterests(people []graph.Person) []interestCluster {
	clusters := make([]interestCluster, 0, len(interestCategories))
	for _, category := range interestCategories {
		var names []string
		for _, person := range people {
			if person.Info == "" {
				continue
			}
			info := strings.ToLower(person.Info)
			for _, keyword := range category.Keywords {
				if strings.Contains(info, keyword) {
					names = append(names, person.Name)
					break
				}
			}
		}
		if len(names) > 0 {
			clusters = append(clusters, interestCluster{Category: category.Name, People: names})
		}
	}
	return clusters
}
