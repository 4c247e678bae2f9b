package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"google.golang.org/api/iterator"

	"crosswarped.com/pipegen"
	"crosswarped.com/pipegen/internal"
	"crosswarped.com/pipegen/internal/logger"
	"crosswarped.com/pipegen/pkg/primitives"
)

type GenerateGridRequest struct {
	Size          int            `json:"size"`
	Seed          uint64         `json:"seed"`
	Count         int            `json:"count"`
	WeightProfile string         `json:"weightProfile"`
	Weights       map[string]int `json:"weights"`
}

type GenerateGridResponse struct {
	Success       bool     `json:"success"`
	Grids         []string `json:"grids"`
	FailedGrid    string   `json:"failedGrid,omitempty"`
	Contradiction *Coord   `json:"contradiction,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func getProfileWeights(ctx context.Context, profile string) (internal.WeightOverrides, error) {
	client, err := bigquery.NewClient(ctx, "pipes-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT tile, weight FROM `pipes-x.FirestoreQuery.tile_weights` WHERE profile = %q", profile)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	overrides := make(internal.WeightOverrides)
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		tile, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		weight, ok := row[1].(int64)
		if !ok {
			return nil, fmt.Errorf("row[1] is not an int64: %v", row[1])
		}
		overrides[tile] = int(weight)
	}
	return overrides, nil
}

func execute(ctx context.Context, req GenerateGridRequest) ([]string, *pipegen.Grid, error) {
	if req.Size < 1 {
		return nil, nil, fmt.Errorf("size must be at least 1")
	}
	if req.Size > 64 {
		return nil, nil, fmt.Errorf("size must be at most 64")
	}
	if req.Count <= 0 {
		return nil, nil, fmt.Errorf("count must be at least 1")
	}
	if req.Count > 10 {
		return nil, nil, fmt.Errorf("count must be at most 10")
	}

	overrides := make(internal.WeightOverrides)
	if req.WeightProfile != "" {
		profile, err := getProfileWeights(ctx, req.WeightProfile)
		if err != nil {
			return nil, nil, fmt.Errorf("getProfileWeights: %w", err)
		}
		slog.Info("loaded weight profile", "profile", req.WeightProfile, "overrides", len(profile))
		for tile, weight := range profile {
			overrides[tile] = weight
		}
	}
	for tile, weight := range req.Weights {
		overrides[tile] = weight
	}

	weights, err := internal.ResolveWeights(overrides)
	if err != nil {
		return nil, nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	solver := pipegen.NewSolver(weights, rand.New(rand.NewPCG(seed, seed)))

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		slog.Info("setting timeout", "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Generate grids
	var grids []string
	var lastFailed *pipegen.Grid
	for i := range req.Count {
		grid, err := solver.Generate(ctx, req.Size)
		switch {
		case err == nil:
			slog.Info("generated grid", "n", i+1, "total", req.Count)
			grids = append(grids, grid.Repr())
		case errors.Is(err, primitives.ErrContradiction):
			slog.Warn("grid hit a contradiction", "n", i+1, "error", err)
			lastFailed = grid
		default:
			return grids, lastFailed, err
		}
	}

	return grids, lastFailed, ctx.Err()
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func generateGrid(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req GenerateGridRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("error parsing JSON body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := GenerateGridResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	grids, lastFailed, err := execute(r.Context(), req)

	response := GenerateGridResponse{
		Success: err == nil,
		Grids:   grids,
	}

	if err != nil {
		response.Error = err.Error()
	} else if len(grids) == 0 {
		response.Success = false
		response.Error = "No grid could be fully solved with the given parameters"
	}
	if lastFailed != nil && len(grids) == 0 {
		response.FailedGrid = lastFailed.Repr()
		if x, y, ok := lastFailed.FirstContradiction(); ok {
			response.Contradiction = &Coord{X: x, Y: y}
		}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("error marshaling response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	logger.Initialize(logger.LoadConfig(os.Getenv("LOG_CONFIG")))

	funcframework.RegisterHTTPFunction("/generate-grid", generateGrid)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		slog.Error("funcframework.StartHostPort failed", "error", err)
		os.Exit(1)
	}
}
