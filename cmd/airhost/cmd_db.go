package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
	"github.com/airhost/ops/internal/core/service"
	mongorepo "github.com/airhost/ops/internal/infrastructure/db/mongo"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		if err := a.ensureIndexes(cmd.Context()); err != nil {
			return err
		}
		a.log.Info().Msg("indexes created")
		return nil
	},
}

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, an order and a welcome notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		if seedReset {
			if err := a.db.Drop(ctx); err != nil {
				return fmt.Errorf("drop database: %w", err)
			}
		}
		if err := a.ensureIndexes(ctx); err != nil {
			return err
		}
		return seed(ctx, a)
	},
}

type seedUser struct {
	in  ports.CreateUserInput
	key string
}

var seedUsers = []seedUser{
	{key: "admin", in: ports.CreateUserInput{Name: "Admin Leder", Email: "admin@airhost.no", Password: "Admin123!", Role: domain.RoleAdmin}},
	{key: "landlord", in: ports.CreateUserInput{Name: "Nora Utleier", Email: "utleier@airhost.no", Password: "Utleier123!", Role: domain.RoleLandlord}},
	{key: "worker", in: ports.CreateUserInput{Name: "Ali Tjeneste", Email: "tjeneste@airhost.no", Password: "Tjeneste123!", Role: domain.RoleService}},
	{key: "dual", in: ports.CreateUserInput{Name: "Sara Begge", Email: "begge@airhost.no", Password: "Begge123!", Role: domain.RoleLandlord, Dual: true}},
}

func seed(ctx context.Context, a *app) error {
	repos := mongorepo.NewRepositories(a.db)
	users := service.NewUserService(repos.Users, access.FallbackDeny, a.log)
	orders := service.NewOrderService(repos.Orders, repos.Users, repos.Images, repos.Comments, repos.Messages, repos.Notifications, a.log)
	notifications := service.NewNotificationService(repos.Notifications, repos.Users, a.log)

	ids := make(map[string]string, len(seedUsers))
	for _, su := range seedUsers {
		u, err := users.Create(ctx, systemActor, su.in)
		if err != nil {
			return fmt.Errorf("seed %s: %w", su.in.Email, err)
		}
		ids[su.key] = u.ID
	}

	order, err := orders.Create(ctx, systemActor, ports.CreateOrderInput{
		Type:       domain.ServiceCleaning,
		Address:    "Karl Johans gate 12, Oslo",
		Date:       time.Now().Add(24 * time.Hour),
		Note:       "Bytt sengetoy og sjekk badet",
		LandlordID: ids["landlord"],
	})
	if err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	if _, err := orders.Assign(ctx, systemActor, order.ID, ids["worker"]); err != nil {
		return fmt.Errorf("seed assignment: %w", err)
	}

	if _, err := notifications.Send(ctx, systemActor, ids["landlord"], "Velkommen! Din forste bestilling er opprettet."); err != nil {
		return fmt.Errorf("seed notification: %w", err)
	}

	a.log.Info().
		Str("admin", seedUsers[0].in.Email).
		Str("landlord", seedUsers[1].in.Email).
		Str("worker", seedUsers[2].in.Email).
		Str("dual", seedUsers[3].in.Email).
		Msg("seed complete")
	return nil
}

var adminName, adminEmail, adminPassword string

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		users := service.NewUserService(mongorepo.NewUserRepository(a.db), access.FallbackDeny, a.log)
		u, err := users.Create(ctx, systemActor, ports.CreateUserInput{
			Name:     adminName,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     domain.RoleAdmin,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "drop the database before seeding")

	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (min 8 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	_ = createAdminCmd.MarkFlagRequired("name")
}
