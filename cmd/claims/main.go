package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumenhq/lumen-backend/internal/config"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/internal/service"
	pkglogger "github.com/lumenhq/lumen-backend/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	reviewerName string

	claimRepo  repository.ClaimRepository
	claimSvc   *service.ClaimService
	moderation *service.ModerationService
)

// rootCmd is the claims review CLI entry point
var rootCmd = &cobra.Command{
	Use:   "lumen-claims",
	Short: "Review and moderate submitted claims",
	Long: `Review and moderate submitted claims from the command line.

Available subcommands:
  pending      - List all pending claims, oldest first
  review       - Interactively review pending claims one by one
  approve      - Approve a single claim by id
  reject       - Reject a single claim by id with a reason
  bulk-approve - Approve many claims in one update
  bulk-reject  - Reject many claims in one update with a shared reason`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List all pending claims, oldest first",
	RunE:  runPending,
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively review pending claims",
	Long: `Walk through every pending claim, oldest first.

For each claim the prompt accepts:
  a - approve
  r - reject (asks for a reason; an empty reason leaves the claim untouched)
  s - skip
  q - quit`,
	RunE: runReview,
}

var approveCmd = &cobra.Command{
	Use:   "approve <id> [notes]",
	Short: "Approve a single claim",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runApprove,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id> <reason>",
	Short: "Reject a single claim with a reason",
	Args:  cobra.ExactArgs(2),
	RunE:  runReject,
}

var bulkApproveCmd = &cobra.Command{
	Use:   "bulk-approve <id...>",
	Short: "Approve many claims in a single update",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBulkApprove,
}

var bulkRejectCmd = &cobra.Command{
	Use:   "bulk-reject <id...> <reason>",
	Short: "Reject many claims in a single update with a shared reason",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBulkReject,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&reviewerName, "reviewer", defaultReviewer(), "reviewer name recorded on each decision")
	rootCmd.AddCommand(pendingCmd, reviewCmd, approveCmd, rejectCmd, bulkApproveCmd, bulkRejectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultReviewer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "cli"
}

// setup connects to the database and wires the services the commands use
func setup(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	claimRepo = repository.NewClaimRepository(db)
	claimSvc = service.NewClaimService(claimRepo, nil)
	moderation = service.NewModerationService(
		repository.NewApplicationRepository(db),
		repository.NewPostRepository(db),
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		claimRepo,
		service.NewMailer(cfg),
		nil,
	)
	return nil
}

func runPending(cmd *cobra.Command, args []string) error {
	claims, err := claimSvc.Pending()
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		fmt.Println("No pending claims.")
		return nil
	}

	for _, claim := range claims {
		printClaim(claim)
	}
	fmt.Printf("%d pending claim(s)\n", len(claims))
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	claims, err := claimSvc.Pending()
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		fmt.Println("No pending claims.")
		return nil
	}

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)
	approved, rejected, skipped := 0, 0, 0

loop:
	for i, claim := range claims {
		fmt.Printf("\n[%d/%d]\n", i+1, len(claims))
		printClaim(claim)

		for {
			fmt.Print("[a]pprove / [r]eject / [s]kip / [q]uit > ")
			line, err := reader.ReadString('\n')
			if err != nil {
				break loop
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "a":
				if _, err := moderation.Transition(ctx, domain.EntityClaim, claim.ID, domain.ActionApprove, "", reviewerName); err != nil {
					return err
				}
				fmt.Printf("Claim %d approved.\n", claim.ID)
				approved++
			case "r":
				fmt.Print("Reason: ")
				reason, err := reader.ReadString('\n')
				if err != nil {
					break loop
				}
				reason = strings.TrimSpace(reason)
				if reason == "" {
					fmt.Println("A reason is required to reject; claim left untouched.")
					skipped++
					break
				}
				if _, err := moderation.Transition(ctx, domain.EntityClaim, claim.ID, domain.ActionReject, reason, reviewerName); err != nil {
					return err
				}
				fmt.Printf("Claim %d rejected.\n", claim.ID)
				rejected++
			case "s":
				skipped++
			case "q":
				break loop
			default:
				continue
			}
			break
		}
	}

	fmt.Printf("\nDone: %d approved, %d rejected, %d skipped.\n", approved, rejected, skipped)
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	notes := ""
	if len(args) == 2 {
		notes = args[1]
	}

	if _, err := moderation.Transition(context.Background(), domain.EntityClaim, id, domain.ActionApprove, notes, reviewerName); err != nil {
		return err
	}
	fmt.Printf("Claim %d approved.\n", id)
	return nil
}

func runReject(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, err := moderation.Transition(context.Background(), domain.EntityClaim, id, domain.ActionReject, args[1], reviewerName); err != nil {
		return err
	}
	fmt.Printf("Claim %d rejected.\n", id)
	return nil
}

func runBulkApprove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	updated, err := moderation.BulkClaims(context.Background(), ids, domain.ActionApprove, "", reviewerName)
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d claim(s) approved.\n", updated, len(ids))
	return nil
}

func runBulkReject(cmd *cobra.Command, args []string) error {
	reason := args[len(args)-1]
	ids, err := parseIDs(args[:len(args)-1])
	if err != nil {
		return err
	}

	updated, err := moderation.BulkClaims(context.Background(), ids, domain.ActionReject, reason, reviewerName)
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d claim(s) rejected.\n", updated, len(ids))
	return nil
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid claim id %q", arg)
	}
	return uint(id), nil
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printClaim(claim *domain.Claim) {
	fmt.Printf("#%d  %s\n", claim.ID, claim.Reference)
	fmt.Printf("  claimant: %s <%s>\n", claim.ClaimantName, claim.ClaimantEmail)
	fmt.Printf("  amount:   %d\n", claim.Amount)
	if claim.Description != "" {
		fmt.Printf("  details:  %s\n", claim.Description)
	}
	fmt.Printf("  filed:    %s\n", claim.CreatedAt.Format("2006-01-02 15:04"))
}
