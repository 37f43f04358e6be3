package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quizmaster/internal/app"
	"quizmaster/internal/config"
	"quizmaster/internal/domain"
	"quizmaster/internal/groq"
	"quizmaster/internal/logger"
)

// NewPlayCmd builds the interactive terminal quiz command.
func NewPlayCmd(configPath, apiKey *string) *cobra.Command {
	var (
		topic string
		count int
		name  string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Generate a quiz and play it in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, *apiKey, topic, count, name)
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "quiz topic (prompted for when omitted)")
	cmd.Flags().IntVar(&count, "count", 5, "number of questions (1-20)")
	cmd.Flags().StringVar(&name, "name", "player", "player name for statistics")
	return cmd
}

var stageText = map[app.Stage]string{
	app.StageConnecting: "Connecting to AI service...",
	app.StageProcessing: "Processing quiz questions...",
	app.StageReady:      "Quiz ready!",
}

func runPlay(ctx context.Context, configPath, apiKeyFlag, topic string, count int, name string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	key, err := cfg.ResolveAPIKey(apiKeyFlag)
	if err != nil {
		return err
	}

	client := groq.NewClient(key, groq.Options{
		BaseURL:        cfg.Groq.BaseURL,
		Model:          cfg.Groq.Model,
		Temperature:    cfg.Groq.Temperature,
		MaxTokens:      cfg.Groq.MaxTokens,
		TopP:           cfg.Groq.TopP,
		ConnectTimeout: config.DurationOr(cfg.Groq.ConnectTimeout, 0),
		RequestTimeout: config.DurationOr(cfg.Groq.RequestTimeout, 0),
	}, log)
	defer client.Close()

	reader := bufio.NewReader(os.Stdin)
	if topic == "" {
		fmt.Print("Quiz topic: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		topic = strings.TrimSpace(line)
	}

	generator := app.NewGenerator(client, log)
	result, err := generator.Generate(ctx, topic, count, app.ProgressFunc(func(stage app.Stage) {
		fmt.Println(stageText[stage])
	}))
	if err != nil {
		return err
	}

	session := result.Session
	if result.Skipped > 0 {
		fmt.Printf("Note: %d invalid question(s) skipped; the quiz has %d questions.\n",
			result.Skipped, session.TotalQuestions())
	}

	stats := domain.NewUserStats(name)
	if err := playSession(reader, session); err != nil {
		return err
	}

	session.Complete()
	stats.Add(session)

	fmt.Printf("\nFinished in %s. Score: %s\n", session.FormattedDuration(), session.ScoreSummary())
	printReview(session)
	fmt.Println("\n" + stats.Summary())
	return nil
}

func playSession(reader *bufio.Reader, session *domain.Session) error {
	for {
		question := session.Current()
		if question == nil {
			return nil
		}

		fmt.Printf("\nQuestion %d of %d: %s\n",
			session.CurrentIndex()+1, session.TotalQuestions(), question.Text)
		for i, option := range question.Options {
			marker := "  "
			if question.Answered() && question.UserAnswer() == option {
				marker = "* "
			}
			fmt.Printf("%s%c) %s\n", marker, 'A'+i, option)
		}

		fmt.Printf("Answer (A-%c), n(ext), p(rev), f(inish): ", 'A'+len(question.Options)-1)
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		input := strings.ToUpper(strings.TrimSpace(line))

		switch input {
		case "N":
			if !session.Advance() {
				fmt.Println("Already at the last question.")
			}
		case "P":
			if !session.Retreat() {
				fmt.Println("Already at the first question.")
			}
		case "F":
			if !session.AllAnswered() {
				fmt.Printf("%d question(s) still unanswered.\n",
					session.TotalQuestions()-session.AnsweredCount())
			}
			return nil
		default:
			if len(input) != 1 {
				fmt.Println("Unrecognized input.")
				continue
			}
			idx := int(input[0] - 'A')
			if idx < 0 || idx >= len(question.Options) {
				fmt.Println("Unrecognized input.")
				continue
			}
			session.SubmitAnswer(question.Options[idx])
			if !session.Advance() && session.AllAnswered() {
				return nil
			}
		}
	}
}

func printReview(session *domain.Session) {
	for i, question := range session.Questions() {
		status := "unanswered"
		switch {
		case question.IsCorrect():
			status = "correct"
		case question.Answered():
			status = "incorrect"
		}
		fmt.Printf("\n%d. %s [%s]\n", i+1, question.Text, status)
		if question.Answered() {
			fmt.Printf("   Your answer: %s\n", question.UserAnswer())
		}
		fmt.Printf("   Correct answer: %s\n", question.CorrectAnswerText())
		fmt.Printf("   %s\n", question.Explanation)
	}
}
