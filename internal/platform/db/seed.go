package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrops/internal/domain/auth"
	"hrops/internal/platform/config"
)

// Seed is idempotent: it fills in the role/permission catalog, the
// initial admin account, and the bonus configuration singleton.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensurePermissions(ctx, pool); err != nil {
		return err
	}

	roleIDs, err := ensureRoles(ctx, pool)
	if err != nil {
		return err
	}

	if err := ensureRolePermissions(ctx, pool, roleIDs); err != nil {
		return err
	}

	if cfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, pool, roleIDs[auth.RoleAdmin], cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}

	return ensureBonusConfig(ctx, pool)
}

func ensurePermissions(ctx context.Context, pool *pgxpool.Pool) error {
	for _, perm := range auth.DefaultPermissions {
		if _, err := pool.Exec(ctx, "INSERT INTO permissions (key) VALUES ($1) ON CONFLICT (key) DO NOTHING", perm); err != nil {
			return err
		}
	}
	return nil
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	roleIDs := map[string]string{}
	for _, name := range auth.RoleNames {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", name).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx, "INSERT INTO roles (name) VALUES ($1) RETURNING id", name).Scan(&id)
			if err != nil {
				return nil, err
			}
		}
		roleIDs[name] = id
	}
	return roleIDs, nil
}

func ensureRolePermissions(ctx context.Context, pool *pgxpool.Pool, roleIDs map[string]string) error {
	for role, perms := range auth.RolePermissions {
		roleID, ok := roleIDs[role]
		if !ok {
			continue
		}
		for _, perm := range perms {
			if _, err := pool.Exec(ctx, `
        INSERT INTO role_permissions (role_id, permission_id)
        SELECT $1, id FROM permissions WHERE key = $2
        ON CONFLICT DO NOTHING
      `, roleID, perm); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, roleID, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role_id, active)
    VALUES ($1, $2, $3, true)
  `, email, hash, roleID)
	return err
}

// Defaults match the office's standing bonus policy: 1000 base, 50 per
// late arrival, 200 per absence, 20 attended days minimum.
func ensureBonusConfig(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO bonus_config (id, base_amount, late_penalty, absence_penalty, minimum_presence_days)
    VALUES (1, 1000, 50, 200, 20)
    ON CONFLICT (id) DO NOTHING
  `)
	return err
}
