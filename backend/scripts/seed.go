// Seeds the graph with the Person uniqueness constraint and a small sample
// dataset for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"go.uber.org/zap"
	"kingraph/backend/internal/graph"
	"kingraph/backend/pkg/config"
	"kingraph/backend/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "Delete all Person nodes before seeding")
	flag.Parse()

	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	if *reset {
		log.Info("Resetting existing people...")
		if err := deleteAllPeople(ctx, driver, cfg.Neo4jDatabase); err != nil {
			log.Fatal("Failed to reset people", zap.Error(err))
		}
	}

	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver, cfg.Neo4jDatabase); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	repo := graph.NewRepository(driver, cfg.Neo4jDatabase)

	people := []graph.Person{
		{
			Name:       "Sarah Johnson",
			Age:        28,
			Location:   "San Francisco",
			Occupation: "software engineer",
			Info:       "Really into hiking and photography",
			Birthday:   dbtype.Date(time.Date(1997, 3, 14, 0, 0, 0, 0, time.UTC)),
		},
		{
			Name:       "Alice Walker",
			Age:        34,
			Location:   "Seattle",
			Occupation: "data scientist",
			Info:       "Loves graph theory research and hiking on weekends",
			Birthday:   "1991-06-02",
		},
		{
			Name:       "Mike Chen",
			Age:        31,
			Location:   "Portland",
			Occupation: "chef",
			Info:       "Passionate about cooking and traveling to new countries",
		},
		{
			Name:       "Emma Davis",
			Age:        26,
			Location:   "Austin",
			Occupation: "photographer",
			Info:       "Coffee enthusiast, always carries a camera",
			Birthday:   "1999-11-23",
		},
	}

	for _, person := range people {
		if err := repo.AddPerson(ctx, person); err != nil {
			log.Warn("Failed to seed person (may already exist)",
				zap.String("name", person.Name),
				zap.Error(err),
			)
		}
	}

	relationships := []struct {
		person1, person2, relType string
		props                     graph.RelationshipProps
	}{
		{"Sarah Johnson", "Emma Davis", "FRIENDS_WITH", graph.RelationshipProps{Since: "2019", Description: "Met at a photography meetup"}},
		{"Alice Walker", "Sarah Johnson", "COLLEAGUE_OF", graph.RelationshipProps{Since: "2022"}},
	}

	for _, rel := range relationships {
		if err := repo.AddRelationship(ctx, rel.person1, rel.person2, rel.relType, rel.props); err != nil {
			log.Warn("Failed to seed relationship",
				zap.String("person1", rel.person1),
				zap.String("person2", rel.person2),
				zap.Error(err),
			)
		}
	}

	log.Info("Seeding complete",
		zap.Int("people", len(people)),
		zap.Int("relationships", len(relationships)),
	)
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext, database string) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: database,
	})
	defer session.Close(ctx)

	_, err := session.Run(ctx,
		"CREATE CONSTRAINT person_name IF NOT EXISTS FOR (p:Person) REQUIRE p.name IS UNIQUE", nil)
	return err
}

func deleteAllPeople(ctx context.Context, driver neo4j.DriverWithContext, database string) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: database,
	})
	defer session.Close(ctx)

	_, err := session.Run(ctx, "MATCH (p:Person) DETACH DELETE p", nil)
	return err
}
