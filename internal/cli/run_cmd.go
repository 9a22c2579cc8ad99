package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/runmode"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Positions on the command line are 1-based; runmode is 0-based. The
// conversion happens only in this file.

type position struct {
	week, day, exercise, set, segment int
	yes bool
}

func (p *position) bindWeek(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.week, "week", 0, "Week number (default: the current week)")
	cmd.Flags().BoolVarP(&p.yes, "yes", "y", false, "Answer yes to confirmation prompts")
}

func (p *position) bindDay(cmd *cobra.Command) {
	p.bindWeek(cmd)
	cmd.Flags().IntVar(&p.day, "day", 0, "Day number within the week")
	_ = cmd.MarkFlagRequired("day")
}

func (p *position) bindExercise(cmd *cobra.Command) {
	p.bindDay(cmd)
	cmd.Flags().IntVar(&p.exercise, "exercise", 0, "Exercise number within the day")
	_ = cmd.MarkFlagRequired("exercise")
}

func (p *position) bindSet(cmd *cobra.Command) {
	p.bindExercise(cmd)
	cmd.Flags().IntVar(&p.set, "set", 0, "Set number within the exercise")
	_ = cmd.MarkFlagRequired("set")
}

func zeroBased(flag string, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("--%s must be 1 or more, got %d", flag, n)
	}
	return n - 1, nil
}

func (p position) exerciseRef(run *runmode.Run) (runmode.ExerciseRef, error) {
	day, err := zeroBased("day", p.day)
	if err != nil {
		return runmode.ExerciseRef{}, err
	}
	ex, err := zeroBased("exercise", p.exercise)
	if err != nil {
		return runmode.ExerciseRef{}, err
	}
	return runmode.ExerciseRef{Week: run.ActiveWeek(), Day: day, Exercise: ex}, nil
}

func (p position) setRef(run *runmode.Run) (runmode.SetRef, error) {
	ref, err := p.exerciseRef(run)
	if err != nil {
		return runmode.SetRef{}, err
	}
	set, err := zeroBased("set", p.set)
	if err != nil {
		return runmode.SetRef{}, err
	}
	return runmode.SetRef{ExerciseRef: ref, Set: set}, nil
}

// withRun opens the block's run, moves to the requested week through the
// navigation gate, runs fn, and closes with a verified save.
func withRun(cmd *cobra.Command, app *App, blockArg string, p position, fn func(run *runmode.Run) error) error {
	ctx := cmd.Context()
	id, err := resolveBlockID(ctx, app, blockArg)
	if err != nil {
		return err
	}
	run, err := app.Runs.Open(ctx, id)
	if err != nil {
		return err
	}
	if p.week != 0 {
		if err := selectWeek(app, run, p.week, p.yes); err != nil {
			return err
		}
	}
	if err := fn(run); err != nil {
		return err
	}
	return run.Close(ctx)
}

// selectWeek moves to block week number week. Weeks are numbered as in
// the block, so a week without sessions cannot be selected.
func selectWeek(app *App, run *runmode.Run, week int, yes bool) error {
	index, err := zeroBased("week", week)
	if err != nil {
		return err
	}
	pos, err := run.WeekPosition(index)
	if err != nil {
		return err
	}
	err = run.SelectWeek(pos)
	if !errors.Is(err, runmode.ErrSkipConfirmationRequired) {
		return err
	}
	title := fmt.Sprintf("Week %d is not finished. Skip ahead to week %d?", weekNumber(run, run.LastCommittedWeek()), week)
	if err := confirm(app, yes, title, "--yes"); err != nil {
		run.CancelSkip()
		return err
	}
	return run.ConfirmSkip()
}

// weekNumber is the 1-based block week shown for the run week at pos.
func weekNumber(run *runmode.Run, pos int) int { return run.WeekIndex(pos) + 1 }

func printTransition(cmd *cobra.Command, run *runmode.Run, t runmode.Transition) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransition(t, run.Block().WeekCount()))
}

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train a block: view weeks and log sets",
	}

	cmd.AddCommand(
		newRunStatusCmd(app),
		newRunProgressCmd(app),
		newRunLogCmd(app),
		newRunToggleCmd(app),
		newRunSegmentCmd(app),
		newRunAddExerciseCmd(app),
		newRunChangeTypeCmd(app),
		newRunCompleteWeekCmd(app),
		newRunClearWeekCmd(app),
	)

	return cmd
}

func newRunStatusCmd(app *App) *cobra.Command {
	var p position

	cmd := &cobra.Command{
		Use:   "status BLOCK",
		Short: "Show the current week, or --week N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				week := run.Weeks()[run.ActiveWeek()]
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunWeek(run.Block().Name, week, run.Block().WeekCount(), app.unit()))
				return nil
			})
		},
	}

	p.bindWeek(cmd)
	return cmd
}

func newRunProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress BLOCK",
		Short: "Show completion and logged volume for every week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], position{}, func(run *runmode.Run) error {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockProgress(run.Block().Name, run.Weeks(), app.unit()))
				return nil
			})
		},
	}
}

// setFlags are the logged values a set accepts. Only flags given on the
// command line are applied.
type setFlags struct {
	reps, time, rounds, rest   int
	weight, distance, calories float64
	rpe, rir                   float64
	tempo, notes               string
	done, undone               bool
}

func (sf *setFlags) bind(f *pflag.FlagSet) {
	f.IntVar(&sf.reps, "reps", 0, "Reps performed")
	f.Float64Var(&sf.weight, "weight", 0, "Load used")
	f.IntVar(&sf.time, "time", 0, "Duration in seconds")
	f.Float64Var(&sf.distance, "distance", 0, "Distance in meters")
	f.Float64Var(&sf.calories, "calories", 0, "Calories")
	f.IntVar(&sf.rounds, "rounds", 0, "Rounds completed")
	f.Float64Var(&sf.rpe, "rpe", 0, "Rate of perceived exertion")
	f.Float64Var(&sf.rir, "rir", 0, "Reps in reserve")
	f.StringVar(&sf.tempo, "tempo", "", "Tempo, e.g. 3-1-1")
	f.IntVar(&sf.rest, "rest", 0, "Rest taken in seconds")
	f.StringVar(&sf.notes, "notes", "", "Set notes")
	f.BoolVar(&sf.done, "done", false, "Mark the set complete")
	f.BoolVar(&sf.undone, "undone", false, "Mark the set incomplete")
}

func (sf *setFlags) update(f *pflag.FlagSet) (runmode.SetUpdate, error) {
	var u runmode.SetUpdate
	if sf.done && sf.undone {
		return u, errors.New("--done and --undone are mutually exclusive")
	}
	if f.Changed("reps") {
		u.Reps = &sf.reps
	}
	if f.Changed("weight") {
		u.Weight = &sf.weight
	}
	if f.Changed("time") {
		u.Time = &sf.time
	}
	if f.Changed("distance") {
		u.Distance = &sf.distance
	}
	if f.Changed("calories") {
		u.Calories = &sf.calories
	}
	if f.Changed("rounds") {
		u.Rounds = &sf.rounds
	}
	if f.Changed("rpe") {
		u.RPE = &sf.rpe
	}
	if f.Changed("rir") {
		u.RIR = &sf.rir
	}
	if f.Changed("tempo") {
		u.Tempo = &sf.tempo
	}
	if f.Changed("rest") {
		u.RestSeconds = &sf.rest
	}
	if f.Changed("notes") {
		u.Notes = &sf.notes
	}
	if sf.done || sf.undone {
		u.Completed = &sf.done
	}
	return u, nil
}

func newRunLogCmd(app *App) *cobra.Command {
	var p position
	var values setFlags

	cmd := &cobra.Command{
		Use:   "log BLOCK",
		Short: "Log values on one set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := values.update(cmd.Flags())
			if err != nil {
				return err
			}
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				ref, err := p.setRef(run)
				if err != nil {
					return err
				}
				t, err := run.UpdateSet(cmd.Context(), ref, u)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged week %d day %d exercise %d set %d\n",
					weekNumber(run, ref.Week), ref.Day+1, ref.Exercise+1, ref.Set+1)
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindSet(cmd)
	values.bind(cmd.Flags())
	return cmd
}

func newRunToggleCmd(app *App) *cobra.Command {
	var p position

	cmd := &cobra.Command{
		Use:   "toggle BLOCK",
		Short: "Flip a set between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				ref, err := p.setRef(run)
				if err != nil {
					return err
				}
				t, err := run.ToggleSet(cmd.Context(), ref)
				if err != nil {
					return err
				}
				state := "not done"
				if run.Weeks()[ref.Week].Days[ref.Day].Exercises[ref.Exercise].Sets[ref.Set].IsCompleted {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %d of exercise %d is %s\n", ref.Set+1, ref.Exercise+1, state)
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindSet(cmd)
	return cmd
}

func newRunSegmentCmd(app *App) *cobra.Command {
	var p position
	var undo bool

	cmd := &cobra.Command{
		Use:   "segment BLOCK",
		Short: "Mark a segment complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				day, err := zeroBased("day", p.day)
				if err != nil {
					return err
				}
				seg, err := zeroBased("segment", p.segment)
				if err != nil {
					return err
				}
				ref := runmode.SegmentRef{Week: run.ActiveWeek(), Day: day, Segment: seg}
				t, err := run.CompleteSegment(cmd.Context(), ref, !undo)
				if err != nil {
					return err
				}
				verb := "complete"
				if undo {
					verb = "reopened"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Segment %d of day %d %s\n", seg+1, day+1, verb)
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindDay(cmd)
	cmd.Flags().IntVar(&p.segment, "segment", 0, "Segment number within the day")
	_ = cmd.MarkFlagRequired("segment")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the segment incomplete instead")
	return cmd
}

func newRunAddExerciseCmd(app *App) *cobra.Command {
	var p position
	var name, typeName string
	var sets, reps, duration int
	var weight float64
	var propagate bool

	cmd := &cobra.Command{
		Use:   "add-exercise BLOCK",
		Short: "Add an exercise to a day, optionally to every later week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := domain.ParseExerciseType(typeName)
			if !ok {
				return fmt.Errorf("unknown exercise type %q", typeName)
			}
			ne := runmode.NewExercise{Name: name, Type: typ, Sets: sets}
			if cmd.Flags().Changed("reps") {
				ne.Reps = &reps
			}
			if cmd.Flags().Changed("weight") {
				ne.Weight = &weight
			}
			if cmd.Flags().Changed("duration") {
				ne.DurationSeconds = &duration
			}

			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				day, err := zeroBased("day", p.day)
				if err != nil {
					return err
				}
				week := run.ActiveWeek()
				if propagate && week < len(run.Weeks())-1 {
					title := fmt.Sprintf("Add %s to the block template and every later week?", name)
					if err := confirm(app, p.yes, title, "--yes"); err != nil {
						return err
					}
				}
				t, err := run.AddExercise(cmd.Context(), week, day, ne, propagate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to week %d day %d\n", name, weekNumber(run, week), day+1)
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindDay(cmd)
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Exercise name")
	f.StringVar(&typeName, "type", "strength", "strength, conditioning, mixed or other")
	f.IntVar(&sets, "sets", 3, "Number of sets")
	f.IntVar(&reps, "reps", 0, "Target reps per set")
	f.Float64Var(&weight, "weight", 0, "Target load per set")
	f.IntVar(&duration, "duration", 0, "Target duration in seconds for conditioning")
	f.BoolVar(&propagate, "propagate", false, "Also add to the template and later weeks")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRunChangeTypeCmd(app *App) *cobra.Command {
	var p position
	var typeName string

	cmd := &cobra.Command{
		Use:   "change-type BLOCK",
		Short: "Switch an exercise between strength and conditioning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := domain.ParseExerciseType(typeName)
			if !ok {
				return fmt.Errorf("unknown exercise type %q", typeName)
			}
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				ref, err := p.exerciseRef(run)
				if err != nil {
					return err
				}
				t, err := run.ChangeExerciseType(cmd.Context(), ref, typ, p.yes)
				if errors.Is(err, runmode.ErrTypeChangeNeedsConfirmation) {
					if err := confirm(app, false, "This exercise has logged sets. Clear them and change its type?", "--yes"); err != nil {
						return err
					}
					t, err = run.ChangeExerciseType(cmd.Context(), ref, typ, true)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exercise %d of day %d is now %s\n", ref.Exercise+1, ref.Day+1, typ)
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindExercise(cmd)
	cmd.Flags().StringVar(&typeName, "type", "", "New exercise type")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newRunCompleteWeekCmd(app *App) *cobra.Command {
	var p position

	cmd := &cobra.Command{
		Use:   "complete-week BLOCK",
		Short: "Mark a week complete regardless of its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				week := run.ActiveWeek()
				t, err := run.MarkWeekComplete(cmd.Context(), week)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Week %d marked complete\n", weekNumber(run, week))
				printTransition(cmd, run, t)
				return nil
			})
		},
	}

	p.bindWeek(cmd)
	return cmd
}

func newRunClearWeekCmd(app *App) *cobra.Command {
	var p position

	cmd := &cobra.Command{
		Use:   "clear-week BLOCK",
		Short: "Remove a manual week completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(cmd, app, args[0], p, func(run *runmode.Run) error {
				week := run.ActiveWeek()
				if _, err := run.ClearWeekOverride(cmd.Context(), week); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Week %d completion cleared\n", weekNumber(run, week))
				return nil
			})
		},
	}

	p.bindWeek(cmd)
	return cmd
}
