package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	orderdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

// DefaultMenu is installed when the menu is empty at startup.
func DefaultMenu() []orderdomain.MenuItem {
	return []orderdomain.MenuItem{
		{Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"},
		{Title: "Pepperoni", Image: "pizza2.png", Price: 0.0042, Description: "Spicy treat"},
		{Title: "Margarita", Image: "pizza3.png", Price: 0.0042, Description: "Essential classic"},
		{Title: "Crusty", Image: "pizza4.png", Price: 0.0028, Description: "A dry mouthed favorite"},
		{Title: "Charred Leopard", Image: "pizza5.png", Price: 0.0099, Description: "For those with a darker side"},
	}
}

// bootstrapAdmin creates the configured admin account unless its email is taken.
func bootstrapAdmin(ctx context.Context, repo userports.Repository, cfg Config, logger *slog.Logger) error {
	if cfg.BootstrapAdminEmail == "" {
		return nil
	}
	if _, err := repo.GetByEmail(ctx, cfg.BootstrapAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, userports.ErrNotFound) {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}
	admin, err := userdomain.NewUser(0, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword,
		cfg.PasswordCost, userdomain.RoleAssignment{Role: userdomain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("build bootstrap admin: %w", err)
	}
	created, err := repo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	logger.Info("bootstrap admin created", slog.Int64("user_id", created.ID), slog.String("email", created.Email))
	return nil
}

func seedMenu(ctx context.Context, repo orderports.Repository, logger *slog.Logger) error {
	menu, err := repo.Menu(ctx)
	if err != nil {
		return fmt.Errorf("read menu: %w", err)
	}
	if len(menu) > 0 {
		return nil
	}
	for _, item := range DefaultMenu() {
		if _, err := repo.AddMenuItem(ctx, item); err != nil {
			return fmt.Errorf("seed menu item %q: %w", item.Title, err)
		}
	}
	logger.Info("menu seeded", slog.Int("items", len(DefaultMenu())))
	return nil
}
