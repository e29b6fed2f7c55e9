package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/modal"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
)

func (s *Shell) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s.app.Router.Refresh(ctx)
		return nil
	}
	m, err := s.module("list", args, 1)
	if err != nil {
		return err
	}
	s.app.Router.Navigate(ctx, sectionOf(m.Key()))
	return nil
}

// fill shows form in the modal while its fields are prompted.
func (s *Shell) fill(form *forms.Form) error {
	s.app.Modal.Open(form, modal.Options{})
	defer s.app.Modal.Close()
	return FillForm(s.reader, form, s.out)
}

func (s *Shell) add(ctx context.Context, args []string) error {
	m, err := s.module("add", args, 1)
	if err != nil {
		return err
	}
	form := m.CreateForm()
	if err := s.fill(form); err != nil {
		return err
	}
	return m.Create(ctx, form.Values())
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	m, err := s.module("edit", args, 2)
	if err != nil {
		return err
	}
	id := resolve(m, args[1:2])[0]
	form, ok := m.EditForm(id)
	if !ok {
		printlnFn("No such item:", args[1])
		return nil
	}
	if err := s.fill(form); err != nil {
		return err
	}
	return m.Edit(ctx, id, form.Values())
}

func (s *Shell) toggle(ctx context.Context, args []string) error {
	m, err := s.module("done", args, 2)
	if err != nil {
		return err
	}
	if !m.Completable() {
		return fmt.Errorf("%s cannot be completed", m.Plural())
	}
	for _, id := range resolve(m, args[1:]) {
		if err := m.Toggle(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	m, err := s.module("rm", args, 2)
	if err != nil {
		return err
	}
	ids := resolve(m, args[1:])
	if len(ids) == 1 {
		err = m.Remove(ctx, ids[0])
	} else {
		_, err = m.RemoveMany(ctx, ids)
	}
	for _, id := range ids {
		if s.app.Selection.Has(m.Key(), id) {
			s.app.Selection.Toggle(m.Key(), id)
		}
	}
	return err
}

func (s *Shell) markAll(ctx context.Context, args []string) error {
	m, err := s.module("markall", args, 1)
	if err != nil {
		return err
	}
	if !m.Completable() {
		return fmt.Errorf("%s cannot be completed", m.Plural())
	}
	return m.MarkAll(ctx)
}

func (s *Shell) water(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, err := s.app.Hydration.QuickAdd(ctx)
		return err
	}
	ml, err := strconv.Atoi(args[0])
	if err != nil {
		return s.usage("water")
	}
	_, err = s.app.Hydration.Add(ctx, ml)
	return s.invalid(err)
}

func (s *Shell) undo(ctx context.Context, _ []string) error {
	_, err := s.app.Hydration.UndoLast(ctx)
	return err
}

func (s *Shell) goal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("goal")
	}
	ml, err := strconv.Atoi(args[0])
	if err != nil {
		return s.usage("goal")
	}
	return s.app.Hydration.SetGoal(ctx, ml)
}

func (s *Shell) sel(_ context.Context, args []string) error {
	m, err := s.module("select", args, 2)
	if err != nil {
		return err
	}
	if !m.Completable() {
		return fmt.Errorf("%s cannot be selected", m.Plural())
	}
	views := make(map[string]bool)
	for _, v := range m.Views() {
		views[v.ID] = true
	}
	for _, id := range resolve(m, args[1:]) {
		if !views[id] {
			printlnFn("No such item:", id)
			continue
		}
		s.app.Selection.Toggle(m.Key(), id)
	}
	return nil
}

func (s *Shell) markSelected(ctx context.Context, _ []string) error {
	_, err := s.app.Quick.MarkSelected(ctx)
	return err
}

func (s *Shell) deleteSelected(ctx context.Context, _ []string) error {
	_, err := s.app.Quick.DeleteSelected(ctx)
	return err
}

func (s *Shell) export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, err := s.app.Export.ExportAll(ctx)
		return err
	}
	key, ok := collectionKey(args[0])
	if !ok {
		return fmt.Errorf("unknown collection %q", args[0])
	}
	_, err := s.app.Export.ExportCollection(ctx, key)
	return err
}

func (s *Shell) diag(context.Context, []string) error {
	writeDiag(s.out, s.app.Diag.Report(s.app.State.Document()), s.app.Diag.Events())
	return nil
}

func (s *Shell) reset(ctx context.Context, _ []string) error {
	ok, err := Confirm(s.reader, "Erase all local data?", s.out)
	if err != nil || !ok {
		return err
	}
	if err := s.app.Reset(ctx); err != nil {
		return err
	}
	s.app.Notifier.Show("All data cleared")
	s.app.Router.Navigate(ctx, router.Home)
	return nil
}

