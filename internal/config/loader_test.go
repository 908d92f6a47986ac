package config_test

import (
	"strings"
	"testing"

	"github.com/MrWong99/zhcorrect/internal/config"
)

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: verbose
merger:
  final_replace_ratio: 2.0
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
	if !strings.Contains(errStr, "final_replace_ratio") {
		t.Errorf("error should mention final_replace_ratio, got: %v", err)
	}
}

func TestValidate_MissingDictPathWarnsNotErrors(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("missing dict_path/rules_path should only warn, not fail validation: %v", err)
	}
}

func TestValidate_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	yaml := `
hotword:
  made_up_field: true
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}
