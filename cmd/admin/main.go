// Command admin is a terminal client for the portfolio backend: log in,
// inspect and reorder content, toggle visibility, run bulk actions, and
// import markdown drafts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/commands"
	"github.com/goliatone/go-portfolio/internal/content"
	syncengine "github.com/goliatone/go-portfolio/internal/sync"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	cfg, err := portfolio.ConfigFromEnv()
	if err != nil {
		return err
	}

	module, err := portfolio.New(cfg, portfolio.WithNotifier(stderrNotifier{}))
	if err != nil {
		return err
	}

	ctx := context.Background()
	command, rest := args[0], args[1:]

	if command == "login" {
		return runLogin(ctx, module)
	}

	module.Session().Restore(ctx)
	if !module.Session().Authenticated() {
		return errors.New("not logged in, run `admin login` first")
	}

	cmds, err := commands.RegisterModuleCommands(module, commands.RegistrationOptions{})
	if err != nil {
		return err
	}

	switch command {
	case "list":
		return runList(ctx, module, cmds, rest)
	case "show", "hide":
		return runVisibility(ctx, cmds, command, rest)
	case "reorder":
		return runReorder(ctx, cmds, rest)
	case "delete":
		return runDelete(ctx, cmds, rest)
	case "bulk":
		return runBulk(ctx, cmds, rest)
	case "import":
		return runImport(ctx, module, cmds, rest)
	case "audit":
		return runAudit(ctx, cmds, rest)
	case "logout":
		module.Session().Logout()
		fmt.Println("logged out")
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Println(`usage: admin <command> [args]

  login                      authenticate against the backend
  logout                     end the session and discard the token
  list <type>                list items for a content type
  show <type> <id>           make an item publicly visible
  hide <type> <id>           hide an item from the public site
  reorder <type> <from> <to> move an item within its list
  delete <type> <id>         delete an item
  bulk <type> <action> <id…> apply show, hide, or delete to several items
  import [dir]               stage markdown files as drafts and save them
  audit [max]                export the audit trail as JSON lines

configuration comes from PORTFOLIO_* environment variables; at minimum
set PORTFOLIO_API_BASE_URL.`)
}

func runLogin(ctx context.Context, module *portfolio.Module) error {
	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := module.Session().Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func runList(ctx context.Context, module *portfolio.Module, cmds *commands.Set, args []string) error {
	t, err := argType(args, 0)
	if err != nil {
		return err
	}
	if err := cmds.Load.Execute(ctx, commands.LoadContent{Types: []content.Type{t}}); err != nil {
		return err
	}

	items := module.Cache().SortedByOrder(t)
	if len(items) == 0 {
		fmt.Printf("no %s items\n", t.APISlug())
		return nil
	}
	for _, item := range items {
		marker := " "
		if !item.Visible {
			marker = "·"
		}
		line := fmt.Sprintf("%s %2d  %-24s  %s", marker, item.Order, item.ID, item.Title)
		if item.Status != "" {
			line += "  [" + string(item.Status) + "]"
		}
		fmt.Println(line)
	}
	return nil
}

func runVisibility(ctx context.Context, cmds *commands.Set, command string, args []string) error {
	t, err := argType(args, 0)
	if err != nil {
		return err
	}
	id, err := argString(args, 1, "id")
	if err != nil {
		return err
	}
	if err := cmds.Load.Execute(ctx, commands.LoadContent{Types: []content.Type{t}}); err != nil {
		return err
	}
	return cmds.SetVisibility.Execute(ctx, commands.SetVisibility{
		ContentType: t,
		ID:          id,
		Visible:     command == "show",
	})
}

func runReorder(ctx context.Context, cmds *commands.Set, args []string) error {
	t, err := argType(args, 0)
	if err != nil {
		return err
	}
	from, err := argInt(args, 1, "from")
	if err != nil {
		return err
	}
	to, err := argInt(args, 2, "to")
	if err != nil {
		return err
	}

	if err := cmds.Load.Execute(ctx, commands.LoadContent{Types: []content.Type{t}}); err != nil {
		return err
	}
	err = cmds.Reorder.Execute(ctx, commands.ReorderContent{
		ContentType: t,
		FromIndex:   from,
		ToIndex:     to,
	})
	if err != nil {
		if errors.Is(err, syncengine.ErrStaleView) {
			return fmt.Errorf("%w, run `admin list %s` to refresh", err, t.APISlug())
		}
		return err
	}
	return nil
}

func runDelete(ctx context.Context, cmds *commands.Set, args []string) error {
	t, err := argType(args, 0)
	if err != nil {
		return err
	}
	id, err := argString(args, 1, "id")
	if err != nil {
		return err
	}
	if err := cmds.Load.Execute(ctx, commands.LoadContent{Types: []content.Type{t}}); err != nil {
		return err
	}
	return cmds.Delete.Execute(ctx, commands.DeleteContent{ContentType: t, ID: id})
}

func runBulk(ctx context.Context, cmds *commands.Set, args []string) error {
	t, err := argType(args, 0)
	if err != nil {
		return err
	}
	actionArg, err := argString(args, 1, "action")
	if err != nil {
		return err
	}
	action := content.BulkAction(actionArg)
	if !action.Valid() {
		return fmt.Errorf("action must be show, hide, or delete, got %q", actionArg)
	}
	ids := args[2:]
	if len(ids) == 0 {
		return errors.New("bulk needs at least one id")
	}
	if err := cmds.Load.Execute(ctx, commands.LoadContent{Types: []content.Type{t}}); err != nil {
		return err
	}
	return cmds.Bulk.Execute(ctx, commands.BulkContent{ContentType: t, Action: action, IDs: ids})
}

func runImport(ctx context.Context, module *portfolio.Module, cmds *commands.Set, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	importer, err := module.Importer()
	if err != nil {
		return errors.New("markdown import is disabled, set PORTFOLIO_MARKDOWN_ENABLED=true and PORTFOLIO_MARKDOWN_DIR")
	}

	imports, err := importer.ImportDir(dir)
	if err != nil {
		return err
	}
	for _, imported := range imports {
		if err := cmds.Save.Execute(ctx, commands.SaveContent{Draft: imported.Draft}); err != nil {
			return fmt.Errorf("%s: %w", imported.SourcePath, err)
		}
		fmt.Printf("saved %s as %s %q\n", imported.SourcePath, imported.Draft.Item.Type.APISlug(), imported.Draft.Item.Title)
	}
	return nil
}

func runAudit(ctx context.Context, cmds *commands.Set, args []string) error {
	msg := commands.ExportAudit{}
	if len(args) > 0 {
		max, err := argInt(args, 0, "max")
		if err != nil {
			return err
		}
		msg.MaxRecords = max
	}
	return cmds.ExportAudit.Execute(ctx, msg)
}

type stderrNotifier struct{}

func (stderrNotifier) Success(msg string) { fmt.Fprintln(os.Stderr, "ok:", msg) }
func (stderrNotifier) Failure(msg string) { fmt.Fprintln(os.Stderr, "failed:", msg) }

func argString(args []string, index int, name string) (string, error) {
	if index >= len(args) || strings.TrimSpace(args[index]) == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return args[index], nil
}

func argType(args []string, index int) (content.Type, error) {
	raw, err := argString(args, index, "type")
	if err != nil {
		return "", err
	}
	return content.ParseType(raw)
}

func argInt(args []string, index int, name string) (int, error) {
	raw, err := argString(args, index, name)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return value, nil
}
