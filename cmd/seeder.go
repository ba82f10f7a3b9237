package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/frahmantamala/talent-intake/internal"
	coreUser "github.com/frahmantamala/talent-intake/internal/core/user"
	"github.com/frahmantamala/talent-intake/internal/role"
	rolePostgres "github.com/frahmantamala/talent-intake/internal/role/postgres"
	"github.com/frahmantamala/talent-intake/internal/user"
	userPostgres "github.com/frahmantamala/talent-intake/internal/user/postgres"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedAdminUsername string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the role catalog and an optional admin account",
	Long: `Create the Admin, Moderator and User roles when missing. With --admin-username
an account holding the Admin role is created or promoted. The password is read from
--admin-password or APP_SEED_ADMIN_PASSWORD.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminUsername, "admin-username", "", "username of the admin account to create or promote")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password for a newly created admin account")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		return fmt.Errorf("failed to init gorm: %w", err)
	}

	roleService := role.NewService(rolePostgres.NewRoleRepository(gormDB), lg)
	created, err := roleService.EnsureDefaults(ctx)
	if err != nil {
		return err
	}
	lg.Info("role catalog ready", "created", created, "catalog", coreUser.DefaultRoles)

	if seedAdminUsername == "" {
		return nil
	}

	password := seedAdminPassword
	if password == "" {
		password = os.Getenv("APP_SEED_ADMIN_PASSWORD")
	}
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), cfg.Security.BCryptCost, lg)
	return seedAdmin(ctx, userService, seedAdminUsername, password)
}

// adminSeeder is the slice of the user service the seed command drives.
type adminSeeder interface {
	Register(ctx context.Context, dto user.RegisterDTO) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	AssignRole(ctx context.Context, dto user.AssignRoleDTO) (*user.DetailResponse, error)
}

// seedAdmin registers username when it does not exist yet and makes sure it
// holds the Admin role. Running it twice is harmless.
func seedAdmin(ctx context.Context, users adminSeeder, username, password string) error {
	lg := logger.LoggerWrapper()

	u, err := users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, internal.ErrUserNotFound):
		if password == "" {
			return errors.New("an admin password is required to create a new account")
		}
		u, err = users.Register(ctx, user.RegisterDTO{Username: username, Password: password})
		if err != nil {
			return fmt.Errorf("register admin: %w", err)
		}
		lg.Info("admin account created", "user_id", u.ID, "username", u.Username)
	case err != nil:
		return fmt.Errorf("look up admin: %w", err)
	}

	_, err = users.AssignRole(ctx, user.AssignRoleDTO{UserID: u.ID, RoleName: coreUser.RoleAdmin})
	if err != nil && !errors.Is(err, internal.ErrRoleAlreadyAssigned) {
		return fmt.Errorf("assign admin role: %w", err)
	}

	lg.Info("admin role ensured", "user_id", u.ID, "username", u.Username)
	return nil
}
