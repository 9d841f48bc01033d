package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/study"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with the mood-support assistant",
	Long: `Start a mood-support conversation. Type /reset to clear the history and
/quit (or Ctrl+D) to leave.

If you are in danger, call 111 (free, 24/7) or 115 for emergencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		st, err := resolveStudent(cmd, b)
		if err != nil {
			return err
		}
		chat := b.studyService(ctx).NewChat()
		return chatLoop(study.WithStudent(ctx, st.Name), chat, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// chatLoop reads one message per line until EOF or /quit.
func chatLoop(ctx context.Context, chat *study.ChatSession, in io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(w, "Mình ở đây để lắng nghe. Bạn muốn chia sẻ điều gì?")
	for {
		fmt.Fprint(w, "\nBạn: ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			chat.Reset()
			fmt.Fprintln(w, "(đã xoá lịch sử trò chuyện)")
			continue
		}

		reply, err := chat.Send(ctx, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, study.FallbackMessage(err))
			continue
		}
		fmt.Fprintf(w, "Laban: %s\n", reply.Text)
	}
}

func init() {
	chatCmd.Flags().String("name", "", "Student name for the interaction log (defaults to the profile)")
}
