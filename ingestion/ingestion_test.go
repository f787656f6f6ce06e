// --- mcquiz-server/ingestion/ingestion_test.go ---
package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"mcquiz-server/models"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImportDirValidTopic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.yaml", `
topic: math
questions:
  - question: "2+2?"
    options: {A: "3", B: "4"}
    correct_options: [B]
  - question: "3*3?"
    options: {A: "9", B: "6"}
    correct_options: [A]
`)

	bank := models.Bank{}
	report, err := ImportDir(dir, bank)
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if report.TopicsImported != 1 || report.QuestionsImported != 2 {
		t.Errorf("report = %+v, want 1 topic / 2 questions", report)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
	if len(bank["math"]) != 2 {
		t.Fatalf("bank[math] has %d questions, want 2", len(bank["math"]))
	}
	if bank["math"][0].Options["B"] != "4" {
		t.Errorf("imported options wrong: %v", bank["math"][0].Options)
	}
}

func TestImportDirTopicDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "networking.yml", `
questions:
  - question: "Default HTTPS port?"
    options: {A: "443", B: "80"}
    correct_options: [A]
`)

	bank := models.Bank{}
	if _, err := ImportDir(dir, bank); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if len(bank["networking"]) != 1 {
		t.Errorf("topic from filename missing: %v", bank)
	}
}

func TestImportDirRejectsInvalidQuestionsButKeepsValid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed.yaml", `
topic: mixed
questions:
  - question: "Valid?"
    options: {A: "yes", B: "no"}
    correct_options: [A]
  - question: ""
    options: {A: "x", B: "y"}
    correct_options: [A]
  - question: "Only one option"
    options: {A: "x"}
    correct_options: [A]
  - question: "Bad correct key"
    options: {A: "x", B: "y"}
    correct_options: [Z]
  - question: "No correct"
    options: {A: "x", B: "y"}
    correct_options: []
`)

	bank := models.Bank{}
	report, err := ImportDir(dir, bank)
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if report.QuestionsImported != 1 {
		t.Errorf("imported %d questions, want 1", report.QuestionsImported)
	}
	if len(report.Errors) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(report.Errors), report.Errors)
	}
	if len(bank["mixed"]) != 1 || bank["mixed"][0].Question != "Valid?" {
		t.Errorf("valid question not kept: %v", bank["mixed"])
	}
}

func TestImportDirReplacesTopicWholesale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.yaml", `
topic: math
questions:
  - question: "New question"
    options: {A: "1", B: "2"}
    correct_options: [A]
`)

	bank := models.Bank{
		"math": {{Question: "Old question", Options: map[string]string{"A": "x", "B": "y"}, CorrectOptions: []string{"A"}}},
	}
	if _, err := ImportDir(dir, bank); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if len(bank["math"]) != 1 || bank["math"][0].Question != "New question" {
		t.Errorf("topic not replaced: %v", bank["math"])
	}
}

func TestImportDirIgnoresNonYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not yaml")
	writeFile(t, dir, "broken.yaml", "{{{")

	bank := models.Bank{}
	report, err := ImportDir(dir, bank)
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if report.TopicsImported != 0 {
		t.Errorf("imported %d topics from junk", report.TopicsImported)
	}
	if len(report.Errors) != 1 {
		t.Errorf("got %d errors, want 1 for the broken YAML file: %v", len(report.Errors), report.Errors)
	}
}

func TestImportDirMissingDirectory(t *testing.T) {
	if _, err := ImportDir(filepath.Join(t.TempDir(), "nope"), models.Bank{}); err == nil {
		t.Fatal("ImportDir on missing directory did not fail")
	}
}
