package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fydblock/fydadmin/internal/domain"
)

var (
	botSearch     string
	botStatusFlag string

	botCreateType   string
	botCreateActive bool
	botCreateParams string

	botUpdateName   string
	botUpdateType   string
	botUpdateActive bool
	botUpdateParams string

	botDeleteYes bool
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "Manage trading bots",
}

var botsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		bots, err := client.ListBots(cmd.Context())
		if err != nil {
			return err
		}
		bots = domain.Filter(bots, botSearch, botStatusFlag)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tRUN\tPROFIT\tPARAMS")
		for _, b := range bots {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				b.ID, b.Name, b.Type, b.Status, b.RunStatus, b.Profit.StringFixed(2), len(b.Params))
		}
		return w.Flush()
	},
}

var botsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bot from its category template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		draft := buildCreateDraft(cmd, args[0])
		if err := client.CreateBot(cmd.Context(), draft); err != nil {
			return err
		}
		fmt.Printf("Created bot %q.\n", draft.Name)
		return nil
	},
}

var botsUpdateCmd = &cobra.Command{
	Use:   "update <bot-id>",
	Short: "Update a bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		bots, err := client.ListBots(cmd.Context())
		if err != nil {
			return err
		}
		bot, ok := findBot(bots, args[0])
		if !ok {
			return fmt.Errorf("bot %q not found", args[0])
		}

		draft := domain.DraftFromBot(bot)
		applyUpdateFlags(cmd, &draft)

		if err := client.UpdateBot(cmd.Context(), bot.ID, draft); err != nil {
			return err
		}
		fmt.Printf("Updated bot %q.\n", draft.Name)
		return nil
	},
}

var botsDeleteCmd = &cobra.Command{
	Use:   "delete <bot-id>",
	Short: "Delete a bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		bots, err := client.ListBots(cmd.Context())
		if err != nil {
			return err
		}
		bot, ok := findBot(bots, args[0])
		if !ok {
			return fmt.Errorf("bot %q not found", args[0])
		}
		if !botDeleteYes {
			if !confirmPrompt(fmt.Sprintf("Delete bot %q?", bot.Name)) {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := client.DeleteBot(cmd.Context(), bot.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted bot %q.\n", bot.Name)
		return nil
	},
}

// buildCreateDraft assembles the outbound draft from the create flags. The
// draft keeps its seeded category template unless --type was actually passed;
// SetType on the flag's resting value would clobber it.
func buildCreateDraft(cmd *cobra.Command, name string) domain.BotDraft {
	draft := domain.NewBotDraft()
	draft.Name = name
	if cmd.Flags().Changed("type") {
		draft.SetType(botCreateType)
	}
	draft.Active = botCreateActive
	if cmd.Flags().Changed("parameters") {
		draft.Params = domain.DecodeParams(botCreateParams)
	}
	return draft
}

// applyUpdateFlags copies only the flags the user set onto the draft.
func applyUpdateFlags(cmd *cobra.Command, draft *domain.BotDraft) {
	if cmd.Flags().Changed("name") {
		draft.Name = botUpdateName
	}
	if cmd.Flags().Changed("type") {
		draft.SetType(botUpdateType)
	}
	if cmd.Flags().Changed("active") {
		draft.Active = botUpdateActive
	}
	if cmd.Flags().Changed("parameters") {
		draft.Params = domain.DecodeParams(botUpdateParams)
	}
}

func findBot(bots []domain.Bot, id string) (domain.Bot, bool) {
	for _, b := range bots {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Bot{}, false
}

func init() {
	botsListCmd.Flags().StringVar(&botSearch, "search", "", "Filter by name or ID")
	botsListCmd.Flags().StringVar(&botStatusFlag, "status", domain.FilterStatusAll, "Filter by status (active, paused, crashed)")

	botsCreateCmd.Flags().StringVar(&botCreateType, "type", domain.BotTypeDCA, "Bot category (DCA, Grid, Signal)")
	botsCreateCmd.Flags().BoolVar(&botCreateActive, "active", true, "Start the bot active rather than paused")
	botsCreateCmd.Flags().StringVar(&botCreateParams, "parameters", "", "Parameter list as JSON, overrides the template")

	botsUpdateCmd.Flags().StringVar(&botUpdateName, "name", "", "Bot name")
	botsUpdateCmd.Flags().StringVar(&botUpdateType, "type", "", "Bot category")
	botsUpdateCmd.Flags().BoolVar(&botUpdateActive, "active", true, "Whether the bot is active")
	botsUpdateCmd.Flags().StringVar(&botUpdateParams, "parameters", "", "Parameter list as JSON")

	botsDeleteCmd.Flags().BoolVarP(&botDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	botsCmd.AddCommand(botsListCmd, botsCreateCmd, botsUpdateCmd, botsDeleteCmd)
	rootCmd.AddCommand(botsCmd)
}
