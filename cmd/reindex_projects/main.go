package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/app"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

// reindex_projects rebuilds similarity embeddings, e.g. after switching
// VECTOR_PROVIDER or the embedding model.
func main() {
	var projects idList
	var dryRun bool
	var limit int
	flag.Var(&projects, "project", "project id to reindex (repeatable)")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned projects without embedding")
	flag.IntVar(&limit, "limit", 0, "limit number of projects processed")
	flag.Parse()

	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close(ctx)

	filter := gateway.Filter{Order: "created_at"}
	if len(projects) > 0 {
		ids := make([]uuid.UUID, 0, len(projects))
		for _, s := range projects {
			if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Println("no valid project id values provided")
			return
		}
		filter = gateway.ByIDs(ids)
	}
	filter.Limit = limit

	rows, err := application.Repos.Project.FindMany(ctx, nil, filter)
	if err != nil {
		fmt.Printf("load projects: %v\n", err)
		os.Exit(1)
	}

	indexed, failed := 0, 0
	for _, p := range rows {
		if dryRun {
			fmt.Printf("[dry-run] would reindex project=%s slug=%s\n", p.ID, p.Slug)
			continue
		}
		res, err := application.Services.Similarity.Vectorize(ctx, p.ID.String())
		if err != nil {
			failed++
			fmt.Printf("reindex project=%s: %v\n", p.ID, err)
			continue
		}
		indexed++
		fmt.Printf("reindexed project=%s model=%s dims=%d\n", p.ID, res.Model, res.Dimensions)
	}
	fmt.Printf("done: projects=%d indexed=%d failed=%d dry_run=%v\n", len(rows), indexed, failed, dryRun)
	if failed > 0 {
		os.Exit(1)
	}
}
