package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/account"
)

const (
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebar_collapsed"
	KeyBusinessName     = "business_name"
	KeyBusinessAddress  = "business_address"
	KeyBusinessPhone    = "business_phone"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

type store interface {
	Get(ctx context.Context, terminalID, key string) (string, error)
	Set(ctx context.Context, terminalID, key, value string) error
	List(ctx context.Context, terminalID string) (map[string]string, error)
}

// Service reads and writes the preferences of one terminal.
type Service struct {
	store      store
	terminalID string
}

func New(store store, terminalID string) *Service {
	return &Service{store: store, terminalID: terminalID}
}

type Preferences struct {
	Theme            string                 `json:"theme"`
	SidebarCollapsed bool                   `json:"sidebarCollapsed"`
	Business         domain.BusinessProfile `json:"business"`
}

func (s *Service) Preferences(ctx context.Context) (Preferences, error) {
	values, err := s.store.List(ctx, s.terminalID)
	if err != nil {
		return Preferences{}, err
	}
	collapsed, _ := strconv.ParseBool(values[KeySidebarCollapsed])
	return Preferences{
		Theme:            themeOrDefault(values[KeyTheme]),
		SidebarCollapsed: collapsed,
		Business:         businessFrom(values),
	}, nil
}

func themeOrDefault(v string) string {
	if v == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func businessFrom(values map[string]string) domain.BusinessProfile {
	name := values[KeyBusinessName]
	if name == "" {
		name = domain.DefaultBusinessName
	}
	return domain.BusinessProfile{
		Name:    name,
		Address: values[KeyBusinessAddress],
		Phone:   values[KeyBusinessPhone],
	}
}

func (s *Service) Theme(ctx context.Context) (string, error) {
	v, err := s.store.Get(ctx, s.terminalID, KeyTheme)
	if errors.Is(err, domain.ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	return themeOrDefault(v), nil
}

func (s *Service) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %s or %s", domain.ErrValidation, ThemeLight, ThemeDark)
	}
	return s.store.Set(ctx, s.terminalID, KeyTheme, theme)
}

func (s *Service) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	return s.store.Set(ctx, s.terminalID, KeySidebarCollapsed, strconv.FormatBool(collapsed))
}

func (s *Service) Business(ctx context.Context) (domain.BusinessProfile, error) {
	values, err := s.store.List(ctx, s.terminalID)
	if err != nil {
		return domain.BusinessProfile{}, err
	}
	return businessFrom(values), nil
}

// SetBusiness stores the ticket header. Only administrators may change it.
func (s *Service) SetBusiness(ctx context.Context, actor domain.User, p domain.BusinessProfile) error {
	if !account.IsAdmin(actor) {
		return fmt.Errorf("%w: only administrators can change the business profile", domain.ErrForbidden)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: missing nombre", domain.ErrValidation)
	}
	for key, value := range map[string]string{
		KeyBusinessName:    p.Name,
		KeyBusinessAddress: strings.TrimSpace(p.Address),
		KeyBusinessPhone:   strings.TrimSpace(p.Phone),
	} {
		if err := s.store.Set(ctx, s.terminalID, key, value); err != nil {
			return err
		}
	}
	return nil
}
