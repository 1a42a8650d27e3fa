// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/id"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed admin user
	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockbook.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, name, role,
			is_active, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System Admin', 'admin', true, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Categories
	categories := []struct {
		code string
		name string
	}{
		{"CAT-001", "Stationery"},
		{"CAT-002", "Electronics"},
		{"CAT-003", "Packaging"},
	}

	categoryIDs := make(map[string]id.ID)
	for _, c := range categories {
		catID := id.New()
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_categories (id, code, name, deletion_mark, version, created_at)
			VALUES ($1, $2, $3, false, 1, NOW())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, catID, c.code, c.name)
		if err != nil {
			log.Warnw("failed to seed category", "name", c.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_categories WHERE code = $1 AND deletion_mark = FALSE
			`, c.code).Scan(&catID); err != nil {
				log.Warnw("failed to fetch existing category", "code", c.code, "error", err)
				continue
			}
		}
		categoryIDs[c.code] = catID
	}

	// 2. Product types
	types := []struct {
		code         string
		name         string
		categoryCode string
	}{
		{"PT-001", "Paper", "CAT-001"},
		{"PT-002", "Writing", "CAT-001"},
		{"PT-003", "Cables", "CAT-002"},
		{"PT-004", "Boxes", "CAT-003"},
	}

	typeIDs := make(map[string]id.ID)
	for _, t := range types {
		categoryID, ok := categoryIDs[t.categoryCode]
		if !ok {
			continue
		}
		typeID := id.New()
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_product_types (id, code, name, category_id, deletion_mark, version, created_at)
			VALUES ($1, $2, $3, $4, false, 1, NOW())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, typeID, t.code, t.name, categoryID)
		if err != nil {
			log.Warnw("failed to seed product type", "name", t.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_product_types WHERE code = $1 AND deletion_mark = FALSE
			`, t.code).Scan(&typeID); err != nil {
				log.Warnw("failed to fetch existing product type", "code", t.code, "error", err)
				continue
			}
		}
		typeIDs[t.code] = typeID
	}

	// 3. Products with zero stock levels
	products := []struct {
		sku          string
		name         string
		categoryCode string
		typeCode     string
	}{
		{"PAP-A4", "Office paper A4", "CAT-001", "PT-001"},
		{"PEN-BLU", "Ballpoint pen, blue", "CAT-001", "PT-002"},
		{"PEN-BLK", "Ballpoint pen, black", "CAT-001", "PT-002"},
		{"USB-C-1M", "USB-C cable 1m", "CAT-002", "PT-003"},
		{"BOX-S", "Shipping box, small", "CAT-003", "PT-004"},
	}

	for _, p := range products {
		categoryID, okCat := categoryIDs[p.categoryCode]
		typeID, okType := typeIDs[p.typeCode]
		if !okCat || !okType {
			continue
		}

		prodID := id.New()
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, sku, category_id, type_id, status, deletion_mark, version, created_at)
			VALUES ($1, $2, $3, $2, $4, $5, 'active', false, 1, NOW())
			ON CONFLICT (sku) WHERE deletion_mark = FALSE DO NOTHING
		`, prodID, p.sku, p.name, categoryID, typeID)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			continue
		}

		// Stock level row mirrors what the product service does at create.
		if _, err := pool.Pool.Exec(ctx, `
			INSERT INTO reg_stock_levels (product_id, quantity, last_updated)
			VALUES ($1, 0, NOW())
			ON CONFLICT (product_id) DO NOTHING
		`, prodID); err != nil {
			log.Warnw("failed to seed stock level", "sku", p.sku, "error", err)
		}
	}

	// 4. Suppliers
	suppliers := []struct {
		code string
		name string
	}{
		{"SUP-001", "Prime Paper Supply Co."},
		{"SUP-002", "Eastline Electronics Ltd."},
	}

	for _, s := range suppliers {
		supID := id.New()
		if _, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_suppliers (id, code, name, has_vat, deletion_mark, version, created_at)
			VALUES ($1, $2, $3, true, false, 1, NOW())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, supID, s.code, s.name); err != nil {
			log.Warnw("failed to seed supplier", "name", s.name, "error", err)
		}
	}

	// 5. Customers
	customers := []struct {
		code  string
		name  string
		group string
	}{
		{"CUS-001", "Downtown Office Center", "wholesale"},
		{"CUS-002", "Jane's Stationery Shop", "retail"},
	}

	for _, c := range customers {
		cusID := id.New()
		if _, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_customers (id, code, name, customer_group, deletion_mark, version, created_at)
			VALUES ($1, $2, $3, $4, false, 1, NOW())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, cusID, c.code, c.name, c.group); err != nil {
			log.Warnw("failed to seed customer", "name", c.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
