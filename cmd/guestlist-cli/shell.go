package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/navigator"
)

// shell drives a navigator.App from a line-oriented terminal.
type shell struct {
	app     *navigator.App
	labels  navigator.Labels
	scanner *bufio.Scanner
	out     io.Writer
}

func newShell(in io.Reader, out io.Writer, labels navigator.Labels) *shell {
	return &shell{
		labels:  labels,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (s *shell) notify(msg string) {
	fmt.Fprintf(s.out, "⚠ %s\n", msg)
}

// run shows the current view and executes commands until exit, end of
// input, or ctx is cancelled.
func (s *shell) run(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := s.render(); err != nil {
			return err
		}

		fmt.Fprintln(s.out, "\nCommands:")
		fmt.Fprintln(s.out, "  1. Guest list")
		fmt.Fprintln(s.out, "  2. Add guest")
		fmt.Fprintln(s.out, "  3. Select guest")
		fmt.Fprintln(s.out, "  4. Back")
		fmt.Fprintln(s.out, "  5. Remove guest")
		fmt.Fprintln(s.out, "  6. Refresh")
		if s.app.State().Current == navigator.ViewDetails {
			fmt.Fprintln(s.out, "  7. Edit guest")
		}
		fmt.Fprintln(s.out, "  0. Exit")
		fmt.Fprint(s.out, "\nEnter command: ")

		command, ok := s.readLine()
		if !ok {
			return nil
		}

		switch command {
		case "1":
			_ = s.app.SwitchView(navigator.ViewList, nil)
		case "2":
			s.addGuest(ctx)
		case "3":
			if id, ok := s.prompt("Guest id: "); ok {
				_ = s.app.SelectGuest(id)
			}
		case "4":
			s.app.GoBack()
		case "5":
			s.removeGuest(ctx)
		case "6":
			_ = s.app.Refresh(ctx)
		case "7":
			s.editGuest(ctx)
		case "0":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid command. Please try again.")
		}
	}
	return nil
}

// selected returns the guest shown in the details view.
func (s *shell) selected() (models.Guest, bool) {
	st := s.app.State()
	if st.Current != navigator.ViewDetails || st.Selected == nil {
		return models.Guest{}, false
	}
	return *st.Selected, true
}

func (s *shell) render() error {
	fmt.Fprintln(s.out, strings.Repeat("-", 60))
	switch s.app.State().Current {
	case navigator.ViewAdd:
		fmt.Fprintln(s.out, "Add Guest")
		return nil
	case navigator.ViewDetails:
		g, _ := s.selected()
		return navigator.RenderGuest(s.out, g, s.labels)
	default:
		return navigator.RenderList(s.out, s.app.Guests(), s.labels)
	}
}

func (s *shell) addGuest(ctx context.Context) {
	if err := s.app.SwitchView(navigator.ViewAdd, nil); err != nil {
		return
	}
	in, ok := s.readForm(models.GuestInput{})
	if !ok {
		return
	}
	_ = s.app.SubmitAdd(ctx, in)
}

func (s *shell) editGuest(ctx context.Context) {
	g, ok := s.selected()
	if !ok {
		fmt.Fprintln(s.out, "Select a guest first.")
		return
	}
	in, ok := s.readForm(g.Input())
	if !ok {
		return
	}
	_ = s.app.SubmitUpdate(ctx, in)
}

func (s *shell) removeGuest(ctx context.Context) {
	id := ""
	if g, ok := s.selected(); ok {
		id = g.ID
	} else if id, ok = s.prompt("Guest id: "); !ok {
		return
	}
	_ = s.app.RemoveGuest(ctx, id)
}

// readForm prompts for every field of a guest. An empty answer keeps the
// value from cur, so editing only needs the fields that change.
func (s *shell) readForm(cur models.GuestInput) (models.GuestInput, bool) {
	in := cur
	var ok bool

	if in.Name, ok = s.promptDefault("Name", cur.Name); !ok {
		return in, false
	}

	fmt.Fprintln(s.out, "Guest of:")
	for i, a := range models.Associations {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, s.labels.Name(a))
	}
	answer, ok := s.promptDefault("Choice", associationChoice(cur.Association))
	if !ok {
		return in, false
	}
	in.Association = parseAssociation(answer)

	answer, ok = s.promptDefault("Family? (y/n)", yesNo(cur.Family))
	if !ok {
		return in, false
	}
	in.Family = parseYesNo(answer)

	if in.DietaryRestrictions, ok = s.promptDefault("Dietary restrictions", cur.DietaryRestrictions); !ok {
		return in, false
	}

	answer, ok = s.promptDefault("Bringing a guest? (yes/no/unsure)", plusOneAnswer(cur.BringingGuest))
	if !ok {
		return in, false
	}
	in.BringingGuest = parsePlusOne(answer)

	if in.BringingGuest == models.PlusOneYes {
		if in.AdditionalGuestName, ok = s.promptDefault("Additional guest name", cur.AdditionalGuestName); !ok {
			return in, false
		}
		if in.AdditionalGuestDietaryRestrictions, ok = s.promptDefault("Additional guest dietary restrictions", cur.AdditionalGuestDietaryRestrictions); !ok {
			return in, false
		}
	} else {
		in.AdditionalGuestName = ""
		in.AdditionalGuestDietaryRestrictions = ""
	}
	return in, true
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

func (s *shell) promptDefault(label, cur string) (string, bool) {
	if cur != "" {
		label = fmt.Sprintf("%s [%s]", label, cur)
	}
	answer, ok := s.prompt(label + ": ")
	if !ok {
		return "", false
	}
	if answer == "" {
		return cur, true
	}
	return answer, true
}

func (s *shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func associationChoice(a models.Association) string {
	for i, candidate := range models.Associations {
		if candidate == a {
			return fmt.Sprint(i + 1)
		}
	}
	return ""
}

func parseAssociation(answer string) models.Association {
	for i, a := range models.Associations {
		if answer == fmt.Sprint(i+1) || strings.EqualFold(answer, string(a)) {
			return a
		}
	}
	return ""
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "y"
	default:
		return "n"
	}
}

func parseYesNo(answer string) *bool {
	var b bool
	switch strings.ToLower(answer) {
	case "y", "yes":
		b = true
	case "n", "no":
		b = false
	default:
		return nil
	}
	return &b
}

func plusOneAnswer(p models.PlusOne) string {
	switch p {
	case models.PlusOneYes:
		return "yes"
	case models.PlusOneNo:
		return "no"
	default:
		return ""
	}
}

func parsePlusOne(answer string) models.PlusOne {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return models.PlusOneYes
	case "n", "no":
		return models.PlusOneNo
	default:
		return models.PlusOneUnknown
	}
}
