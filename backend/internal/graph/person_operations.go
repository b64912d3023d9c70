package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	pkgerrors "kingraph/backend/pkg/errors"
)

// personReturnClause keeps the projected shape identical across reads
const personReturnClause = `
	RETURN p.name as name, p.age as age, p.location as location,
	       p.birthday as birthday, p.info as info, p.occupation as occupation`

// updatableFields is the whitelist of person properties that UpdatePerson may
// set. Field names are interpolated into the SET clause, so anything outside
// this list is silently skipped.
var updatableFields = map[string]bool{
	"age":        true,
	"location":   true,
	"birthday":   true,
	"info":       true,
	"occupation": true,
}

// GetAllPeople returns every person in the graph, ordered by name
func (r *Repository) GetAllPeople(ctx context.Context) ([]Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `MATCH (p:Person)` + personReturnClause + `
	ORDER BY p.name`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	return collectPeople(ctx, result)
}

// GetPersonByName returns the person with the exact given name, or nil
func (r *Repository) GetPersonByName(ctx context.Context, name string) (*Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `MATCH (p:Person {name: $name})` + personReturnClause

	result, err := session.Run(ctx, query, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, nil
	}

	p := personFromRecord(result.Record())
	return &p, nil
}

// SearchPeople performs a case-insensitive substring search across the
// name, info, location and occupation properties
func (r *Repository) SearchPeople(ctx context.Context, query string) ([]Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	cypher := `
	MATCH (p:Person)
	WHERE toLower(p.name) CONTAINS toLower($query)
	   OR toLower(p.info) CONTAINS toLower($query)
	   OR toLower(p.location) CONTAINS toLower($query)
	   OR toLower(p.occupation) CONTAINS toLower($query)` + personReturnClause + `
	ORDER BY p.name`

	result, err := session.Run(ctx, cypher, map[string]any{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}

	return collectPeople(ctx, result)
}

// AddPerson creates a new person node. Absent fields are stored as nulls.
func (r *Repository) AddPerson(ctx context.Context, person Person) error {
	if person.Name == "" {
		return fmt.Errorf("person name is required")
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
	CREATE (p:Person {
		name: $name,
		age: $age,
		location: $location,
		birthday: $birthday,
		info: $info,
		occupation: $occupation,
		created: datetime()
	})`

	_, err := session.Run(ctx, query, map[string]any{
		"name":       person.Name,
		"age":        nullableInt(person.Age),
		"location":   nullable(person.Location),
		"birthday":   person.Birthday,
		"info":       nullable(person.Info),
		"occupation": nullable(person.Occupation),
	})
	if err != nil {
		return fmt.Errorf("failed to add person: %w", err)
	}

	r.logger.Info("Person added", zap.String("name", person.Name))
	return nil
}

// UpdatePerson patches the named person with the whitelisted fields present
// in updates. A match on zero nodes is reported as an error rather than a
// silent no-op.
func (r *Repository) UpdatePerson(ctx context.Context, name string, updates map[string]any) error {
	setClause := ""
	params := map[string]any{"name": name}
	for field, value := range updates {
		if !updatableFields[field] {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("p.%s = $%s", field, field)
		params[field] = value
	}
	if setClause == "" {
		return fmt.Errorf("no updatable fields in update for %q", name)
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
	MATCH (p:Person {name: $name})
	SET %s, p.updated = datetime()`, setClause)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if summary.Counters().PropertiesSet() == 0 {
		return pkgerrors.NewPersonNotFound(name)
	}

	r.logger.Info("Person updated", zap.String("name", name))
	return nil
}

// DeletePerson removes the named person node and any attached edges
func (r *Repository) DeletePerson(ctx context.Context, name string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
	MATCH (p:Person {name: $name})
	DETACH DELETE p`

	result, err := session.Run(ctx, query, map[string]any{"name": name})
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if summary.Counters().NodesDeleted() == 0 {
		return pkgerrors.NewPersonNotFound(name)
	}

	r.logger.Info("Person deleted", zap.String("name", name))
	return nil
}

func collectPeople(ctx context.Context, result neo4j.ResultWithContext) ([]Person, error) {
	people := []Person{}
	for result.Next(ctx) {
		people = append(people, personFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return people, nil
}

func personFromRecord(record *neo4j.Record) Person {
	birthday, _ := record.Get("birthday")
	return Person{
		Name:       getStringFromRecord(record, "name"),
		Age:        getInt64FromRecord(record, "age"),
		Location:   getStringFromRecord(record, "location"),
		Birthday:   birthday,
		Info:       getStringFromRecord(record, "info"),
		Occupation: getStringFromRecord(record, "occupation"),
	}
}
