// Command contract_check replays read requests against two backends and
// reports where the entities they return differ once decoded. Casing and
// envelope differences are not reported.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type comparison struct {
	Target         target
	ExpectedStatus int
	ActualStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
}

func main() {
	var (
		expectedBase string
		actualBase   string
		targetsPath  string
		timeout      time.Duration
	)

	flag.StringVar(&expectedBase, "expected-base", "http://localhost:3000", "Reference backend base URL")
	flag.StringVar(&actualBase, "actual-base", "http://localhost:8080", "Backend under test base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "contract_check", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	results := make([]comparison, 0, len(targets))
	for _, t := range targets {
		results = append(results, compareTarget(client, expectedBase, actualBase, t))
	}

	breaking, optional := tally(results)
	printReport(os.Stdout, results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var targets []target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return targets, nil
}

func tally(results []comparison) (breaking, optional int) {
	for _, res := range results {
		if res.Error == nil && res.StatusMatch && res.BodyMatch {
			continue
		}
		if res.Target.Critical {
			breaking++
		} else if res.Error == nil {
			optional++
		}
	}
	return breaking, optional
}

func compareTarget(client *http.Client, expectedBase, actualBase string, tgt target) comparison {
	comp := comparison{Target: tgt}
	expectedStatus, expectedBody, err := fetch(client, expectedBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("reference request failed: %w", err)
		return comp
	}
	actualStatus, actualBody, err := fetch(client, actualBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("request under test failed: %w", err)
		return comp
	}

	comp.ExpectedStatus = expectedStatus
	comp.ActualStatus = actualStatus
	comp.StatusMatch = expectedStatus == actualStatus
	if expectedStatus >= http.StatusBadRequest || actualStatus >= http.StatusBadRequest {
		comp.BodyMatch = comp.StatusMatch
		return comp
	}

	expected, err := decodeForPath(tgt.Path, expectedBody)
	if err != nil {
		comp.Error = fmt.Errorf("decode reference body: %w", err)
		return comp
	}
	actual, err := decodeForPath(tgt.Path, actualBody)
	if err != nil {
		comp.Error = fmt.Errorf("decode body under test: %w", err)
		return comp
	}
	comp.BodyMatch = reflect.DeepEqual(expected, actual)
	return comp
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, error) {
	if client == nil {
		return 0, nil, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// decodeForPath decodes body through the entity schema served at path.
// Collections are sorted by id.
func decodeForPath(path string, body []byte) (interface{}, error) {
	switch {
	case strings.HasPrefix(path, "/api/etudiants"):
		return decodeAs[models.Etudiant](body, "etudiant")
	case strings.HasPrefix(path, "/api/parcours"):
		return decodeAs[models.Parcours](body, "parcours")
	case strings.HasPrefix(path, "/api/ues"):
		return decodeAs[models.UE](body, "ue")
	case strings.HasPrefix(path, "/api/notes"):
		return decodeAs[models.Note](body, "note")
	}
	return nil, fmt.Errorf("no entity schema for %s", path)
}

func decodeAs[T models.Identifiable](body []byte, envelope string) (interface{}, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Identifier() < items[j].Identifier() })
		return items, nil
	}
	var item *T
	if err := json.Unmarshal(models.Unwrap(trimmed, envelope), &item); err != nil {
		return nil, err
	}
	return item, nil
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Contract Check Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		fmt.Fprintf(w, "  Status: %d vs %d | Body match: %t | Critical: %t\n", res.ExpectedStatus, res.ActualStatus, res.BodyMatch, res.Target.Critical)
	}
}
