// Seed genera datos de ejemplo (Person/Movie/ACTED_IN) en Neo4j y crea un
// embed contra la API para revisarlo en el navegador.
//
// Uso:
//
//	go run ./cmd/seed -persons 200 -movies 50 -edges 400 -api http://localhost:8080
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"graph-embedder/internal/config"
	"graph-embedder/internal/graph"
)

var roles = []string{"Actor", "Cameo", "Guest"}

func main() {
	persons := flag.Int("persons", 200, "number of Person nodes")
	movies := flag.Int("movies", 50, "number of Movie nodes")
	edges := flag.Int("edges", 400, "number of ACTED_IN relationships")
	apiBase := flag.String("api", "http://localhost:8080", "base URL of the running API")
	expiresDays := flag.Int("expires", 7, "embed expiration in days")
	cypher := flag.String("cypher", "MATCH (p:Person)-[r:ACTED_IN]->(m:Movie) RETURN p,r,m LIMIT 200", "cypher query for the embed")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client, err := graph.NewNeo4jClient(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, logger)
	if err != nil {
		log.Fatalf("neo4j client: %v", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	if err := seedGraph(ctx, client, *persons, *movies, *edges); err != nil {
		log.Fatalf("seed graph: %v", err)
	}
	log.Printf("seeded %d persons, %d movies, %d relationships", *persons, *movies, *edges)

	viewURL, err := createEmbed(*apiBase, *cypher, *expiresDays)
	if err != nil {
		log.Fatalf("create embed: %v", err)
	}
	fmt.Println(viewURL)
}

// seedGraph inserta los lotes por UNWIND para no abrir una transacción por nodo.
func seedGraph(ctx context.Context, client graph.Client, persons, movies, edges int) error {
	personRows := make([]map[string]any, 0, persons)
	for i := 1; i <= persons; i++ {
		personRows = append(personRows, map[string]any{"idx": i, "name": fmt.Sprintf("Person %d", i)})
	}
	movieRows := make([]map[string]any, 0, movies)
	for i := 1; i <= movies; i++ {
		movieRows = append(movieRows, map[string]any{"idx": i, "title": fmt.Sprintf("Movie %d", i)})
	}
	relRows := make([]map[string]any, 0, edges)
	for i := 1; i <= edges; i++ {
		relRows = append(relRows, map[string]any{
			"idx":  i,
			"pidx": rand.Intn(persons) + 1,
			"midx": rand.Intn(movies) + 1,
			"role": roles[rand.Intn(len(roles))],
		})
	}

	if _, err := client.Run(ctx, `
		UNWIND $persons AS p
		MERGE (pp:Person {idx: p.idx})
		SET pp.name = p.name
	`, map[string]any{"persons": personRows}); err != nil {
		return err
	}

	if _, err := client.Run(ctx, `
		UNWIND $movies AS m
		MERGE (mm:Movie {idx: m.idx})
		SET mm.title = m.title
	`, map[string]any{"movies": movieRows}); err != nil {
		return err
	}

	_, err := client.Run(ctx, `
		UNWIND $rels AS r
		MATCH (p:Person {idx: r.pidx}), (m:Movie {idx: r.midx})
		MERGE (p)-[rel:ACTED_IN {rel_idx: r.idx}]->(m)
		SET rel.role = r.role
	`, map[string]any{"rels": relRows})
	return err
}

func createEmbed(apiBase, cypher string, expiresDays int) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"cypherQuery":   cypher,
		"expiresInDays": expiresDays,
	})
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: 20 * time.Second}
	resp, err := httpClient.Post(apiBase+"/api/embed", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("embed creation failed: status=%d body=%s", resp.StatusCode, body)
	}

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			EmbedURL string `json:"embedUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if !parsed.Success {
		return "", fmt.Errorf("embed creation failed: %s", body)
	}
	return parsed.Data.EmbedURL, nil
}
