package commands

import (
	"Quill/internal/client"
	"Quill/internal/view"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// app 单次命令执行期间共享的客户端与提示
type app struct {
	server  string
	token   string
	yes     bool
	timeout time.Duration

	client  *client.Client
	notices *view.Notices
	in      *bufio.Reader
	out     io.Writer
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd 构建完整命令树，in/out 便于测试替换
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out}

	rootCmd := &cobra.Command{
		Use:           "quillctl",
		Short:         "Quill blog reader and admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.client = client.New(a.server, client.WithToken(a.token), client.WithTimeout(a.timeout))
			a.notices = view.NewNotices(view.DefaultNoticeTTL)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.flushNotices()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&a.server, "server", envOr("QUILL_SERVER", "http://localhost:8080"), "Quill API base URL")
	rootCmd.PersistentFlags().StringVar(&a.token, "token", os.Getenv("QUILL_TOKEN"), "Bearer token for admin endpoints")
	rootCmd.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Skip delete confirmation")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(
		newPostsCmd(a),
		newCategoriesCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newCoverCmd(a),
		newActivitiesCmd(a),
		newHashPasswordCmd(a),
	)
	return rootCmd
}

// Confirm 从输入读取 y/N
func (a *app) Confirm(prompt string) bool {
	if a.yes {
		return true
	}
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, _ := a.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// flushNotices 命令行没有自动消失的界面，退出前把仍在展示的提示打印出来
func (a *app) flushNotices() {
	if a.notices == nil {
		return
	}
	for _, n := range a.notices.Active() {
		prefix := "ok"
		if n.Kind == view.NoticeError {
			prefix = "error"
		}
		a.printf("[%s] %s\n", prefix, n.Message)
		a.notices.Dismiss(n.ID)
	}
}

// userErr 命令失败时 PostRun 不执行，提示只通过返回的错误输出一次
func userErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(client.UserMessage(err))
}

// stateErr 加载失败时把 Loadable 的提示转成命令错误
func stateErr[T any](state view.Loadable[T]) error {
	if state.Status() == view.StatusFailed {
		return errors.New(state.Message())
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
