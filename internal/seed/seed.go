package seed

import (
	"context"
	"fmt"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/terminal"
)

type preferenceStore interface {
	Set(ctx context.Context, terminalID, key, value string) error
	List(ctx context.Context, terminalID string) (map[string]string, error)
}

// Defaults are written for a terminal the first time it is seeded.
var Defaults = map[string]string{
	terminal.KeyTheme:            terminal.ThemeLight,
	terminal.KeySidebarCollapsed: "false",
	terminal.KeyBusinessName:     domain.DefaultBusinessName,
	terminal.KeyBusinessAddress:  "",
	terminal.KeyBusinessPhone:    "",
}

// Apply writes the default preferences for terminalID. Keys that already
// hold a value are left alone, so running it twice changes nothing. It
// returns how many keys were written.
func Apply(ctx context.Context, store preferenceStore, terminalID string) (int, error) {
	current, err := store.List(ctx, terminalID)
	if err != nil {
		return 0, fmt.Errorf("list preferences: %w", err)
	}
	written := 0
	for key, value := range Defaults {
		if _, ok := current[key]; ok {
			continue
		}
		if err := store.Set(ctx, terminalID, key, value); err != nil {
			return written, fmt.Errorf("set %s: %w", key, err)
		}
		written++
	}
	return written, nil
}
