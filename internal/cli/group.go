package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dkoval/ctxpress/internal/analyze"
	"github.com/dkoval/ctxpress/internal/llm"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/spf13/cobra"
)

var (
	focusParticipant   string
	knownParticipants  []string
	showMentions       bool
	showVotes          bool
	showContradictions bool
	outputJSON         bool
	llmEnabled         bool
	llmProvider        string
	llmModel           string
)

// groupCmd represents the group command
var groupCmd = &cobra.Command{
	Use:   "group <conversation-file>",
	Short: "Analyze and compress a multi-party conversation log",
	Long: `Group mode segments a conversation log into per-participant messages and
reconstructs its coordination structure:
- Who mentioned whom, and whether mentions were acknowledged
- What was voted for, with per-choice tallies
- Self-referential claims ("I was never mentioned", "there are 3 votes")
  checked against the extracted record, with contradictions flagged

Example:
  ctxpress group session_log.md
  ctxpress group session_log.md --focus FORGE
  ctxpress group session_log.md --mentions
  ctxpress group session_log.md --contradictions
  ctxpress group session_log.md --json
  ctxpress group session_log.md --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func init() {
	rootCmd.AddCommand(groupCmd)

	groupCmd.Flags().StringVar(&focusParticipant, "focus", "", "participant to spotlight in the report")
	groupCmd.Flags().StringSliceVar(&knownParticipants, "participants", nil, "known participant names (overrides detection)")
	groupCmd.Flags().BoolVar(&showMentions, "mentions", false, "output only the @mention graph")
	groupCmd.Flags().BoolVar(&showVotes, "votes", false, "output only the vote tallies")
	groupCmd.Flags().BoolVar(&showContradictions, "contradictions", false, "output only detected contradictions")
	groupCmd.Flags().BoolVar(&outputJSON, "json", false, "output full result as JSON")

	// LLM flags
	groupCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM digest generation")
	groupCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	groupCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runGroup(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	conversation, err := readInputFile(args[0], cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s (%d bytes)\n", args[0], len(conversation))
	}

	analyzer := analyze.New()
	report := analyzer.Analyze(conversation, analyze.Options{
		Participants: knownParticipants,
		Focus:        focusParticipant,
	})

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Segmented %d messages from %d participants\n", report.TotalMessages, report.UniqueParticipants)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(report.Claims))
		fmt.Fprintf(os.Stderr, "✓ Detected %d contradictions\n", len(report.Contradictions))
	}

	if llmEnabled {
		if err := attachDigest(cfg, report); err != nil {
			return err
		}
	}

	switch {
	case outputJSON:
		return printJSON(report)
	case showMentions:
		printMentionGraph(report)
	case showVotes:
		printVoteTallies(report)
	case showContradictions:
		printContradictions(report)
	default:
		printFullReport(report)
	}
	return nil
}

// attachDigest configures a provider from flags and environment and hangs
// the digest off the report. Digest failure fails the command; roster
// warnings do not.
func attachDigest(cfg *model.Config, report *model.GroupReport) error {
	if err := configureLLM(cfg); err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.LLM.Timeout)*time.Second)
	defer cancel()

	digest, err := llm.NewDigester(provider).Digest(ctx, report, rosterOf(report))
	if err != nil {
		return err
	}
	report.Digest = digest

	for _, warning := range digest.Warnings {
		fmt.Fprintf(os.Stderr, "[!] %s\n", warning)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Generated LLM digest using %s/%s\n", digest.Provider, digest.Model)
	}
	return nil
}

// rosterOf returns the sorted participant set of a report.
func rosterOf(report *model.GroupReport) []string {
	roster := make([]string, 0, len(report.ParticipantContexts))
	for name := range report.ParticipantContexts {
		roster = append(roster, name)
	}
	sort.Strings(roster)
	return roster
}

func printJSON(report *model.GroupReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printMentionGraph(report *model.GroupReport) {
	fmt.Println("\n=== MENTION GRAPH ===")
	fmt.Println()

	mentioners := make([]string, 0, len(report.MentionGraph))
	for name := range report.MentionGraph {
		mentioners = append(mentioners, name)
	}
	sort.Strings(mentioners)

	total := 0
	for _, mentioner := range mentioners {
		fmt.Printf("%s mentioned:\n", mentioner)

		targets := report.MentionGraph[mentioner]
		names := make([]string, 0, len(targets))
		for name := range targets {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("  @%s: %d time(s)\n", name, targets[name])
			total += targets[name]
		}
	}
	fmt.Printf("\nTotal mentions: %d\n", total)
}

func printVoteTallies(report *model.GroupReport) {
	fmt.Println("\n=== VOTE TALLIES ===")
	fmt.Println()

	topics := make([]string, 0, len(report.Votes))
	for topic := range report.Votes {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		choices := report.Votes[topic]
		fmt.Printf("Topic: %s\n", topic)

		names := make([]string, 0, len(choices))
		for name := range choices {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if choices[names[i]] != choices[names[j]] {
				return choices[names[i]] > choices[names[j]]
			}
			return names[i] < names[j]
		})

		total := 0
		for _, name := range names {
			fmt.Printf("  %s: %d vote(s)\n", name, choices[name])
			total += choices[name]
		}
		fmt.Printf("  Total: %d\n\n", total)
	}

	if len(report.VoteDetails) > 0 {
		fmt.Println("Vote Details:")
		for _, v := range report.VoteDetails {
			fmt.Printf("  %s -> %s\n", v.Voter, v.Choice)
		}
	}
}

func printContradictions(report *model.GroupReport) {
	fmt.Println("\n=== CONTRADICTIONS DETECTED ===")
	fmt.Println()

	if len(report.Contradictions) == 0 {
		fmt.Println("[OK] No contradictions detected.")
		return
	}

	fmt.Printf("[!] Found %d contradiction(s):\n\n", len(report.Contradictions))
	for i, c := range report.Contradictions {
		fmt.Printf("%d. [%s] %s\n", i+1, strings.ToUpper(string(c.Severity)), c.Type)
		if c.ClaimID >= 0 && c.ClaimID < len(report.Claims) {
			fmt.Printf("   Claim: %s\n", report.Claims[c.ClaimID].Text)
		}
		fmt.Printf("   Fact: %s\n", c.Fact)
		fmt.Printf("   Evidence: %s\n", c.Evidence)
		fmt.Println()
	}
}

func printFullReport(report *model.GroupReport) {
	fmt.Println(report.CompressedText)
	fmt.Println("\n=== COMPRESSION METRICS ===")
	fmt.Printf("Original: %d chars (~%d tokens)\n", report.OriginalSize, report.OriginalSize/model.CharsPerToken)
	fmt.Printf("Compressed: %d chars (~%d tokens)\n", report.CompressedSize, report.CompressedSize/model.CharsPerToken)
	fmt.Printf("Ratio: %.1f%%\n", report.CompressionRatio*100)
	fmt.Printf("Token Savings: ~%d tokens\n", report.EstimatedTokenSavings)

	if report.Digest != nil {
		fmt.Println("\n=== LLM DIGEST ===")
		fmt.Println(report.Digest.Text)
	}
}
