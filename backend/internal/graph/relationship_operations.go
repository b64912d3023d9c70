package graph

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	pkgerrors "kingraph/backend/pkg/errors"
)

// relTypePattern is the identifier charset allowed for relationship types.
// The type is an edge label, which Cypher cannot bind as a parameter, so it
// is interpolated into the query text and must stay structural-injection safe.
var relTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidRelationshipType reports whether relType is safe to use as an edge label
func ValidRelationshipType(relType string) bool {
	return relTypePattern.MatchString(relType)
}

// AddRelationship creates a directed typed edge between two existing person
// nodes. Both endpoints must already exist; no nodes are created implicitly.
func (r *Repository) AddRelationship(ctx context.Context, person1, person2, relType string, props RelationshipProps) error {
	if !ValidRelationshipType(relType) {
		return pkgerrors.NewInvalidRelationshipType(relType)
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
	MATCH (p1:Person {name: $person1}), (p2:Person {name: $person2})
	CREATE (p1)-[r:%s {
		since: $since,
		description: $description,
		created: datetime()
	}]->(p2)`, relType)

	result, err := session.Run(ctx, query, map[string]any{
		"person1":     person1,
		"person2":     person2,
		"since":       nullable(props.Since),
		"description": nullable(props.Description),
	})
	if err != nil {
		return fmt.Errorf("failed to add relationship: %w", err)
	}

	// MATCH on a missing endpoint yields zero rows and CREATE never runs;
	// the counters are the only signal that nothing happened.
	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to add relationship: %w", err)
	}
	if summary.Counters().RelationshipsCreated() == 0 {
		return fmt.Errorf("cannot relate %q to %q: both people must exist", person1, person2)
	}

	r.logger.Info("Relationship added",
		zap.String("person1", person1),
		zap.String("person2", person2),
		zap.String("type", relType),
	)
	return nil
}

// DeleteRelationship removes edges from person1 to person2. An empty relType
// deletes edges of any type; otherwise only edges of that type are removed.
func (r *Repository) DeleteRelationship(ctx context.Context, person1, person2, relType string) error {
	query := `
	MATCH (p1:Person {name: $person1})-[r]->(p2:Person {name: $person2})
	DELETE r`

	if relType != "" {
		if !ValidRelationshipType(relType) {
			return pkgerrors.NewInvalidRelationshipType(relType)
		}
		query = fmt.Sprintf(`
	MATCH (p1:Person {name: $person1})-[r:%s]->(p2:Person {name: $person2})
	DELETE r`, relType)
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]any{
		"person1": person1,
		"person2": person2,
	})
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if summary.Counters().RelationshipsDeleted() == 0 {
		return fmt.Errorf("no relationship found between %q and %q", person1, person2)
	}

	r.logger.Info("Relationship deleted",
		zap.String("person1", person1),
		zap.String("person2", person2),
		zap.String("type", relType),
	)
	return nil
}

// GetRelationships returns the edges touching the named person in either
// direction, or every edge in the graph when personName is empty
func (r *Repository) GetRelationships(ctx context.Context, personName string) ([]Relationship, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
	MATCH (p1:Person)-[r]->(p2:Person)
	RETURN p1.name as person1, type(r) as relationship, p2.name as person2,
	       r.since as since, r.description as description`
	params := map[string]any{}

	if personName != "" {
		query = `
	MATCH (p1:Person {name: $name})-[r]->(p2:Person)
	RETURN p1.name as person1, type(r) as relationship, p2.name as person2,
	       r.since as since, r.description as description
	UNION
	MATCH (p1:Person)-[r]->(p2:Person {name: $name})
	RETURN p1.name as person1, type(r) as relationship, p2.name as person2,
	       r.since as since, r.description as description`
		params["name"] = personName
	}

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get relationships: %w", err)
	}

	relationships := []Relationship{}
	for result.Next(ctx) {
		record := result.Record()
		relationships = append(relationships, Relationship{
			Person1:     getStringFromRecord(record, "person1"),
			Person2:     getStringFromRecord(record, "person2"),
			Type:        getStringFromRecord(record, "relationship"),
			Since:       getStringFromRecord(record, "since"),
			Description: getStringFromRecord(record, "description"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return relationships, nil
}
