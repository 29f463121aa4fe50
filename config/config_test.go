package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenAddr != ":8787" {
		t.Errorf("ListenAddr default: got %q", cfg.ListenAddr)
	}
	if cfg.Region != "IN" {
		t.Errorf("Region default: got %q", cfg.Region)
	}
	if cfg.DebounceInterval != 300*time.Millisecond {
		t.Errorf("DebounceInterval default: got %v", cfg.DebounceInterval)
	}
	if cfg.InterleaveLimit != 20 {
		t.Errorf("InterleaveLimit default: got %d", cfg.InterleaveLimit)
	}
	if !reflect.DeepEqual(cfg.BrowseProviders, []int{8, 119, 122}) {
		t.Errorf("BrowseProviders default: got %v", cfg.BrowseProviders)
	}
	if !cfg.EnableQueryExpansion || !cfg.EnableProviderKeywords {
		t.Error("optional stages should default to enabled")
	}
	if cfg.ExcludedLanguages != nil {
		t.Errorf("ExcludedLanguages should default to nil, got %v", cfg.ExcludedLanguages)
	}
	if cfg.ProviderKeywords["netflix"] != 8 {
		t.Errorf("ProviderKeywords missing netflix: %v", cfg.ProviderKeywords)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("CATALOG_REGION", "US")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("BROWSE_LIMIT", "30")
	t.Setenv("BROWSE_PROVIDERS", "8, 337")
	t.Setenv("PREWARM_TERMS", "dune, oppenheimer")
	t.Setenv("ENABLE_QUERY_EXPANSION", "false")
	t.Setenv("EXCLUDED_LANGUAGES", "ru, zh")

	cfg := Load()

	if cfg.ListenAddr != ":9000" || cfg.Region != "US" {
		t.Errorf("string overrides not applied: %+v", cfg)
	}
	if cfg.DebounceInterval != 150*time.Millisecond {
		t.Errorf("DebounceInterval override: got %v", cfg.DebounceInterval)
	}
	if cfg.InterleaveLimit != 30 {
		t.Errorf("InterleaveLimit override: got %d", cfg.InterleaveLimit)
	}
	if !reflect.DeepEqual(cfg.BrowseProviders, []int{8, 337}) {
		t.Errorf("BrowseProviders override: got %v", cfg.BrowseProviders)
	}
	if !reflect.DeepEqual(cfg.PrewarmTerms, []string{"dune", "oppenheimer"}) {
		t.Errorf("PrewarmTerms override: got %v", cfg.PrewarmTerms)
	}
	if cfg.EnableQueryExpansion {
		t.Error("EnableQueryExpansion override not applied")
	}
	if !reflect.DeepEqual(cfg.ExcludedLanguages, []string{"ru", "zh"}) {
		t.Errorf("ExcludedLanguages override: got %v", cfg.ExcludedLanguages)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SEARCH_DEBOUNCE", "-1s")
	t.Setenv("BROWSE_LIMIT", "zero")
	t.Setenv("BROWSE_PROVIDERS", "not,numbers")
	t.Setenv("ENABLE_QUERY_EXPANSION", "maybe")

	cfg := Load()

	if cfg.DebounceInterval != 300*time.Millisecond {
		t.Errorf("negative debounce should fall back to default, got %v", cfg.DebounceInterval)
	}
	if cfg.InterleaveLimit != 20 {
		t.Errorf("non-numeric limit should fall back to default, got %d", cfg.InterleaveLimit)
	}
	if !reflect.DeepEqual(cfg.BrowseProviders, []int{8, 119, 122}) {
		t.Errorf("non-numeric providers should fall back to default, got %v", cfg.BrowseProviders)
	}
	if !cfg.EnableQueryExpansion {
		t.Error("unparsable bool should fall back to default")
	}
}
