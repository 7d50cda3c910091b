package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Manideep236692/IARE-ChatBot/internal/api"
	"github.com/Manideep236692/IARE-ChatBot/internal/transcript"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var (
		configPath string
		sessionID  int64
		category   string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the campus assistant",
		Long: "Starts an interactive conversation with the AI assistant. " +
			"Inside the session: /category <name> toggles a topic filter, /feedback <up|down> rates the last answer, " +
			"/new starts a fresh conversation, /quit exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, configPath)
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}

			store := transcript.New()
			if sessionID != 0 {
				if err := resumeSession(cmd, a, store, sessionID); err != nil {
					return failMessage(cmd, err)
				}
			}
			if category != "" {
				store.SetCategory(category)
			}

			return runChat(cmd, a, store)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ccb.yaml", "path to ccb config file")
	cmd.Flags().Int64Var(&sessionID, "session", 0, "resume an existing conversation by ID")
	cmd.Flags().StringVar(&category, "category", "", "topic category filter (admissions, fees, placements, ...)")
	return cmd
}

// resumeSession loads a stored conversation into the transcript and
// replays it on screen.
func resumeSession(cmd *cobra.Command, a *app, store *transcript.Store, id int64) error {
	sess, err := a.client.Session(cmd.Context(), id)
	if err != nil {
		return err
	}
	msgs := make([]transcript.Message, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		msgs = append(msgs, transcript.Message{
			ID:        strconv.FormatInt(m.ID, 10),
			Role:      strings.ToLower(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Category:  m.Category,
			Feedback:  m.Feedback,
		})
	}
	store.SetMessages(msgs)
	store.SetSessionID(sess.ID)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resumed %q (%d messages)\n\n", sess.Title, len(msgs))
	for _, m := range store.Messages() {
		printMessage(out, m)
	}
	return nil
}

// runChat is the interactive loop. All transcript mutations happen here,
// in direct response to user input or completed calls.
func runChat(cmd *cobra.Command, a *app, store *transcript.Store) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Ask about admissions, fees, placements and more. /quit to exit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			done, err := handleChatCommand(cmd, a, store, line)
			if err != nil {
				fmt.Fprintf(out, "! %s\n", api.ErrorMessage(err))
			}
			if done {
				return nil
			}
			continue
		}

		sendChatMessage(cmd, a, store, line)
	}
	return scanner.Err()
}

// sendChatMessage appends the user message, asks the backend, and appends
// either the assistant reply or an error placeholder. The typing flag is
// set strictly between the two appends.
func sendChatMessage(cmd *cobra.Command, a *app, store *transcript.Store, text string) {
	out := cmd.OutOrStdout()

	store.AddMessage(transcript.Message{Role: transcript.RoleUser, Content: text})
	store.SetTyping(true)
	fmt.Fprintln(out, "assistant is typing...")

	reply, err := a.client.SendMessage(cmd.Context(), text, store.SessionID(), store.Category())
	if err != nil {
		msg := store.AddMessage(transcript.Message{
			Role:    transcript.RoleAssistant,
			Content: "Sorry, I could not process that. Please try again.",
			IsError: true,
		})
		store.SetTyping(false)
		printMessage(out, msg)
		fmt.Fprintf(out, "! %s\n", api.ErrorMessage(err))
		return
	}

	store.SetSessionID(reply.SessionID)
	msg := store.AddMessage(transcript.Message{
		ID:        strconv.FormatInt(reply.ID, 10),
		Role:      transcript.RoleAssistant,
		Content:   reply.Response,
		Timestamp: reply.Timestamp,
		Category:  reply.Category,
	})
	store.SetTyping(false)
	printMessage(out, msg)
}

// handleChatCommand processes a /command. It returns true when the loop
// should exit.
func handleChatCommand(cmd *cobra.Command, a *app, store *transcript.Store, line string) (bool, error) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/new":
		store.ClearMessages()
		store.SetSessionID(0)
		fmt.Fprintln(out, "Started a new conversation")
		return false, nil

	case "/category":
		store.SetCategory(arg)
		if c := store.Category(); c != "" {
			fmt.Fprintf(out, "Category filter: %s\n", c)
		} else {
			fmt.Fprintln(out, "Category filter cleared")
		}
		return false, nil

	case "/feedback":
		return false, sendFeedback(cmd, a, store, arg)

	case "/suggest":
		suggestions, err := a.client.Suggestions(cmd.Context(), store.Category())
		if err != nil {
			return false, err
		}
		for _, s := range suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
		return false, nil

	default:
		fmt.Fprintf(out, "Unknown command %s\n", fields[0])
		return false, nil
	}
}

// sendFeedback rates the most recent assistant answer.
func sendFeedback(cmd *cobra.Command, a *app, store *transcript.Store, arg string) error {
	feedback := ""
	switch arg {
	case "up", "positive":
		feedback = transcript.FeedbackPositive
	case "down", "negative":
		feedback = transcript.FeedbackNegative
	default:
		return fmt.Errorf("usage: /feedback <up|down>")
	}

	last, ok := lastAssistantMessage(store)
	if !ok {
		return fmt.Errorf("no assistant answer to rate yet")
	}
	id, err := strconv.ParseInt(last.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("last answer has no server ID to rate")
	}

	if err := a.client.SendFeedback(cmd.Context(), id, feedback); err != nil {
		return err
	}
	store.UpdateFeedback(last.ID, feedback)
	fmt.Fprintln(cmd.OutOrStdout(), "Thanks for the feedback")
	return nil
}

// lastAssistantMessage finds the newest non-error assistant message.
func lastAssistantMessage(store *transcript.Store) (transcript.Message, bool) {
	msgs := store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == transcript.RoleAssistant && !msgs[i].IsError {
			return msgs[i], true
		}
	}
	return transcript.Message{}, false
}

// printMessage renders one transcript entry.
func printMessage(w io.Writer, m transcript.Message) {
	label := "you"
	if m.Role == transcript.RoleAssistant {
		label = "assistant"
	}
	if m.IsError {
		label = "assistant (error)"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Format("15:04"), label, m.Content)
}
