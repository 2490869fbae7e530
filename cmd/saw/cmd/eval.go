package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/saw/internal/domain/recipe"
	"github.com/corey/saw/internal/ports"
)

var evalAll bool

var evalCmd = &cobra.Command{
	Use:   "eval <block> [property=value ...]",
	Short: "Evaluate a block against the loaded recipes",
	Long: "Loads the recipes, then prints what sawing the given block produces.\n" +
		"The first matching recipe wins; --all prints the output of every match.\n\n" +
		"  saw eval oak_log axis=y\n" +
		"  saw eval demo:crate --all",
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVarP(&evalAll, "all", "a", false, "Print the output of every matching recipe")
}

func runEval(cmd *cobra.Command, args []string) error {
	subject, err := parseSubject(args)
	if err != nil {
		return err
	}

	engine, _, err := loadEngine(cmd.Context(), nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header := subject.ID.String()
	if len(subject.State) > 0 {
		header += "[" + formatState(subject.State) + "]"
	}

	env := engine.Env()
	if !evalAll {
		rec, ok := engine.Match(subject)
		if !ok {
			fmt.Fprintf(out, "%s⚡ %s%s │ %sno matching recipe%s\n", colorBold, header, colorReset, colorYellow, colorReset)
			return nil
		}
		fmt.Fprintf(out, "%s⚡ %s%s │ %s%s%s\n", colorBold, header, colorReset, colorCyan, rec.Source, colorReset)
		fmt.Fprint(out, formatItems(rec.Apply(env)))
		return nil
	}

	matched := engine.MatchAll(subject)
	fmt.Fprintf(out, "%s⚡ %s%s │ %d matching recipes\n", colorBold, header, colorReset, len(matched))
	for _, rec := range matched {
		fmt.Fprintf(out, "%s%s%s\n", colorCyan, rec.Source, colorReset)
		fmt.Fprint(out, formatItems(rec.Apply(env)))
	}
	return nil
}

// parseSubject turns "<block> [k=v ...]" into a block state subject.
func parseSubject(args []string) (recipe.BlockState, error) {
	id, err := ports.ParseIdentifier(args[0])
	if err != nil {
		return recipe.BlockState{}, fmt.Errorf("block: %w", err)
	}
	state := make(map[string]string, len(args)-1)
	for _, arg := range args[1:] {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return recipe.BlockState{}, fmt.Errorf("property %q: expected name=value", arg)
		}
		state[k] = v
	}
	return recipe.BlockState{ID: id, State: state}, nil
}
