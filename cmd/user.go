package cmd

import (
	"fmt"

	"portfolio-api/config"
	"portfolio-api/middleware"
	"portfolio-api/models"
	"portfolio-api/repositories"
	"portfolio-api/services"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string
	tokenUserID  string
	tokenRole    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Provision users for local development",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user with a password account",
	Long: `Create a user and a credential account with a bcrypt password hash.

Sign up normally happens through the auth provider; this command exists so
a local database can be seeded. When --role is given a bearer token carrying
that role is printed as well.`,
	RunE: runUserCreate,
}

var userTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a development bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID == "" {
			return errors.New("--id is required")
		}
		return printToken(cmd, tokenUserID, tokenRole)
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name (defaults to the email local part)")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password")
	userCreateCmd.Flags().StringVar(&userRole, "role", "", "role to put in the printed token (reader or admin)")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")

	userTokenCmd.Flags().StringVar(&tokenUserID, "id", "", "user id")
	userTokenCmd.Flags().StringVar(&tokenRole, "role", string(models.RoleReader), "role (reader or admin)")

	userCmd.AddCommand(userCreateCmd, userTokenCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	svc := services.NewUserService(repositories.NewStore(db), nil)
	user, err := svc.Provision(cmd.Context(), models.ProvisionUserRequest{
		Name:     userName,
		Email:    userEmail,
		Password: userPassword,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.ID, user.Email)

	if userRole == "" {
		return nil
	}
	return printToken(cmd, user.ID, userRole)
}

func printToken(cmd *cobra.Command, userID, rawRole string) error {
	role := models.UserRole(rawRole)
	if role != models.RoleReader && role != models.RoleAdmin {
		return errors.Errorf("unknown role %q", rawRole)
	}
	token, err := middleware.IssueToken(cfg.JWTKey(), userID, role, config.JWTExpiration)
	if err != nil {
		return errors.Wrap(err, "sign token")
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
