package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/domain"
)

var (
	userSearch     string
	userStatusFlag string

	userSetName   string
	userSetRole   string
	userSetStatus string
	userSetPlan   string
	userSetExpiry string

	userDeleteYes bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		users = domain.Filter(users, userSearch, userStatusFlag)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tSTATUS\tPLAN\tLAST LOGIN")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				u.DisplayID, u.Email, u.FullName, u.Role, u.Status, u.Plan, u.LastLogin)
		}
		return w.Flush()
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user's profile fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		user, ok := findUser(users, args[0])
		if !ok {
			return fmt.Errorf("user %q not found", args[0])
		}

		draft := domain.DraftFromUser(user)
		if cmd.Flags().Changed("name") {
			draft.FullName = userSetName
		}
		if cmd.Flags().Changed("role") {
			draft.Role = userSetRole
		}
		if cmd.Flags().Changed("status") {
			draft.Status = userSetStatus
		}
		if cmd.Flags().Changed("plan") {
			draft.Plan = userSetPlan
		}
		if cmd.Flags().Changed("plan-expiry") {
			draft.PlanExpiry = userSetExpiry
		}

		if err := client.UpdateUser(cmd.Context(), user.ID, draft); err != nil {
			return err
		}
		fmt.Printf("Updated %s.\n", user.Email)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		user, ok := findUser(users, args[0])
		if !ok {
			return fmt.Errorf("user %q not found", args[0])
		}
		if !userDeleteYes {
			if !confirmPrompt(fmt.Sprintf("Delete user %s?", user.Email)) {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := client.DeleteUser(cmd.Context(), user.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", user.Email)
		return nil
	},
}

// findUser accepts either the internal ID or the display ID.
func findUser(users []domain.User, id string) (domain.User, bool) {
	for _, u := range users {
		if u.ID == id || u.DisplayID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func confirmPrompt(question string) bool {
	answer, err := promptLine(question + " [y/N] ")
	if err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

func init() {
	usersListCmd.Flags().StringVar(&userSearch, "search", "", "Filter by email, name, or display ID")
	usersListCmd.Flags().StringVar(&userStatusFlag, "status", domain.FilterStatusAll, "Filter by status (Active, Suspended)")

	usersUpdateCmd.Flags().StringVar(&userSetName, "name", "", "Full name")
	usersUpdateCmd.Flags().StringVar(&userSetRole, "role", "", "Role (user, editor, admin)")
	usersUpdateCmd.Flags().StringVar(&userSetStatus, "status", "", "Status (Active, Suspended)")
	usersUpdateCmd.Flags().StringVar(&userSetPlan, "plan", "", "Plan (Free, Basic, Pro)")
	usersUpdateCmd.Flags().StringVar(&userSetExpiry, "plan-expiry", "", "Plan expiry date (YYYY-MM-DD)")

	usersDeleteCmd.Flags().BoolVarP(&userDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
