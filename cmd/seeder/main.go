// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/adapters/db"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/core/services"
	"github.com/Sheimsito/picm-server/internal/pkg/config"
	"github.com/Sheimsito/picm-server/internal/pkg/logger"
)

// Seeds a development database with operator accounts, a small catalog,
// and a handful of stock movements recorded through the stock service so
// the ledger stays consistent with the stored stock.
func main() {
	var (
		truncate = flag.Bool("truncate", false, "truncate all tables before seeding")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	slogger := logger.SetupLogger(level, "text").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	if *truncate {
		if err := truncateTables(ctx, database); err != nil {
			slogger.Error("failed to truncate tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("tables truncated")
	}

	seeder := newSeeder(database, slogger)
	if err := seeder.run(ctx); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seeding complete")
}

type seeder struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	suppliers  ports.SupplierRepository
	products   ports.ProductRepository
	supplies   ports.SupplyRepository
	stock      ports.StockService
	logger     *slog.Logger
}

func newSeeder(database *db.Database, slogger *slog.Logger) *seeder {
	productRepo := db.NewProductRepository(database, slogger)
	supplyRepo := db.NewSupplyRepository(database, slogger)
	movementRepo := db.NewMovementRepository(database, slogger)

	return &seeder{
		users:      db.NewUserRepository(database, slogger),
		categories: db.NewCategoryRepository(database, slogger),
		suppliers:  db.NewSupplierRepository(database, slogger),
		products:   productRepo,
		supplies:   supplyRepo,
		stock:      services.NewStockService(productRepo, supplyRepo, movementRepo, database, slogger),
		logger:     slogger,
	}
}

func (s *seeder) run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("users: %w", err)
	}

	categoryIDs, err := s.seedCategories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	supplierIDs, err := s.seedSuppliers(ctx)
	if err != nil {
		return fmt.Errorf("suppliers: %w", err)
	}

	productIDs, err := s.seedProducts(ctx, categoryIDs, supplierIDs)
	if err != nil {
		return fmt.Errorf("products: %w", err)
	}

	supplyIDs, err := s.seedSupplies(ctx, supplierIDs)
	if err != nil {
		return fmt.Errorf("supplies: %w", err)
	}

	if err := s.seedMovements(ctx, productIDs, supplyIDs); err != nil {
		return fmt.Errorf("movements: %w", err)
	}

	return nil
}

func (s *seeder) seedUsers(ctx context.Context) error {
	accounts := []struct {
		username string
		email    string
		password string
		role     domain.UserRole
	}{
		{"admin", "admin@picm.local", "admin123!", domain.RoleAdmin},
		{"mperez", "mperez@picm.local", "employee1!", domain.RoleEmployee},
		{"jgarcia", "jgarcia@picm.local", "employee2!", domain.RoleEmployee},
	}

	for _, a := range accounts {
		existing, err := s.users.FindByUsername(ctx, a.username)
		if err != nil {
			return err
		}
		if existing != nil {
			s.logger.Debug("user already exists", slog.String("username", a.username))
			continue
		}

		u := &domain.User{
			Username: a.username,
			Email:    a.email,
			Role:     a.role,
		}
		if err := u.SetPassword(a.password); err != nil {
			return err
		}
		u.PrepareForStorage()
		if err := s.users.Save(ctx, u); err != nil {
			return err
		}
		s.logger.Info("user created", slog.String("username", a.username), slog.String("role", string(a.role)))
	}

	return nil
}

func (s *seeder) seedCategories(ctx context.Context) (map[string]uuid.UUID, error) {
	names := []struct {
		name, description string
	}{
		{"Bebidas", "Bebidas frías y calientes"},
		{"Abarrotes", "Productos de despensa"},
		{"Limpieza", "Artículos de limpieza"},
		{"Lácteos", "Leche, quesos y derivados"},
	}

	ids := make(map[string]uuid.UUID, len(names))
	for _, c := range names {
		existing, err := s.categories.FindByName(ctx, c.name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids[c.name] = existing.ID
			continue
		}

		cat := &domain.Category{Name: c.name, Description: c.description}
		cat.PrepareForStorage()
		if err := s.categories.Save(ctx, cat); err != nil {
			return nil, err
		}
		ids[c.name] = cat.ID
		s.logger.Info("category created", slog.String("name", c.name))
	}

	return ids, nil
}

func (s *seeder) seedSuppliers(ctx context.Context) ([]uuid.UUID, error) {
	suppliers := []*domain.Supplier{
		{
			Name:    "Distribuidora Central",
			NIT:     "1234567-8",
			Phone:   "22334455",
			Email:   "ventas@dicentral.com",
			Address: "Zona 4, Ciudad",
		},
		{
			Name:    "Importadora del Sur",
			NIT:     "7654321-0",
			Phone:   "55667788",
			Email:   "pedidos@impsur.com",
			Address: "Zona 12, Ciudad",
		},
	}

	ids := make([]uuid.UUID, 0, len(suppliers))
	for _, sup := range suppliers {
		if err := sup.Validate(); err != nil {
			return nil, err
		}
		sup.PrepareForStorage()
		if err := s.suppliers.Save(ctx, sup); err != nil {
			return nil, err
		}
		ids = append(ids, sup.ID)
		s.logger.Info("supplier created", slog.String("name", sup.Name))
	}

	return ids, nil
}

func (s *seeder) seedProducts(ctx context.Context, categories map[string]uuid.UUID, suppliers []uuid.UUID) ([]uuid.UUID, error) {
	type row struct {
		name     string
		price    string
		stock    int
		category string
		supplier int
	}

	rows := []row{
		{"Agua pura 600ml", "4.50", 120, "Bebidas", 0},
		{"Gaseosa cola 2L", "14.00", 60, "Bebidas", 0},
		{"Arroz blanco 1lb", "6.25", 200, "Abarrotes", 1},
		{"Frijol negro 1lb", "8.00", 150, "Abarrotes", 1},
		{"Desinfectante 1L", "22.50", 40, "Limpieza", 1},
		{"Leche entera 1L", "12.75", 80, "Lácteos", 0},
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		existing, err := s.products.FindByName(ctx, r.name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids = append(ids, existing.ID)
			continue
		}

		price, err := decimal.NewFromString(r.price)
		if err != nil {
			return nil, err
		}

		categoryID := categories[r.category]
		supplierID := suppliers[r.supplier]
		p := &domain.Product{
			Name:       r.name,
			UnitPrice:  price,
			Stock:      r.stock,
			CategoryID: &categoryID,
			SupplierID: &supplierID,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		p.PrepareForStorage()
		if err := s.products.Save(ctx, p); err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
		s.logger.Info("product created", slog.String("name", r.name), slog.Int("stock", r.stock))
	}

	return ids, nil
}

func (s *seeder) seedSupplies(ctx context.Context, suppliers []uuid.UUID) ([]uuid.UUID, error) {
	type row struct {
		name     string
		price    string
		stock    int
		supplier int
	}

	rows := []row{
		{"Bolsas plásticas (100u)", "18.00", 35, 0},
		{"Papel para impresora", "45.00", 12, 1},
		{"Cinta de empaque", "9.50", 50, 1},
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		existing, err := s.supplies.FindByName(ctx, r.name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids = append(ids, existing.ID)
			continue
		}

		price, err := decimal.NewFromString(r.price)
		if err != nil {
			return nil, err
		}

		supplierID := suppliers[r.supplier]
		sup := &domain.Supply{
			Name:       r.name,
			UnitPrice:  price,
			Stock:      r.stock,
			SupplierID: &supplierID,
		}
		if err := sup.Validate(); err != nil {
			return nil, err
		}
		sup.PrepareForStorage()
		if err := s.supplies.Save(ctx, sup); err != nil {
			return nil, err
		}
		ids = append(ids, sup.ID)
		s.logger.Info("supply created", slog.String("name", r.name), slog.Int("stock", r.stock))
	}

	return ids, nil
}

// seedMovements records a few adjustments through the stock service so each
// one lands in the ledger alongside the stock change.
func (s *seeder) seedMovements(ctx context.Context, productIDs, supplyIDs []uuid.UUID) error {
	if len(productIDs) < 2 || len(supplyIDs) < 1 {
		return nil
	}

	adjustments := []struct {
		kind   domain.EntityKind
		id     uuid.UUID
		params ports.AdjustStockParams
	}{
		{
			kind: domain.KindProduct,
			id:   productIDs[0],
			params: ports.AdjustStockParams{
				Increase: true,
				Stock:    150,
				Comment:  "Reposición semanal",
				Username: "admin",
			},
		},
		{
			kind: domain.KindProduct,
			id:   productIDs[1],
			params: ports.AdjustStockParams{
				Decrease: true,
				Stock:    45,
				Comment:  "Venta de mostrador",
				Username: "mperez",
			},
		},
		{
			kind: domain.KindSupply,
			id:   supplyIDs[0],
			params: ports.AdjustStockParams{
				Increase: true,
				Stock:    50,
				Comment:  "Compra mensual",
				Username: "admin",
			},
		},
	}

	for _, a := range adjustments {
		result, err := s.stock.AdjustStock(ctx, a.kind, a.id, a.params)
		if err != nil {
			return err
		}
		s.logger.Info("movement recorded",
			slog.String("kind", string(a.kind)),
			slog.String("type", string(result.Movement.MovementType)),
			slog.Int("stock", result.NewStock))
	}

	return nil
}

func truncateTables(ctx context.Context, database *db.Database) error {
	tables := []string{
		"movements",
		"products",
		"supplies",
		"categories",
		"suppliers",
		"users",
	}
	for _, table := range tables {
		if _, err := database.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
