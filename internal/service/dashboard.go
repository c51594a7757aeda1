package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	formGoal     = "goal"
	formCategory = "category"

	msgFillAllFields   = "Preencha todos os campos"
	msgTargetInvalid   = "Informe um valor maior que zero"
	msgCategoryNameReq = "Digite um nome para a categoria"
	fieldGoalCategory  = "categoryId"
	fieldGoalName      = "name"
	fieldGoalTarget    = "targetAmount"
	fieldCategoryName  = "name"
)

var goalCategories = []domain.GoalCategory{
	{ID: "viagem", Name: "Viagem dos Sonhos", Icon: "plane", Color: "from-blue-500 to-cyan-400", Description: "Planeje sua próxima aventura"},
	{ID: "emergencia", Name: "Reserva de Emergência", Icon: "shield", Color: "from-green-500 to-emerald-400", Description: "Segurança para imprevistos"},
	{ID: "educacao", Name: "Educação", Icon: "graduation-cap", Color: "from-purple-500 to-violet-400", Description: "Invista no seu conhecimento"},
	{ID: "casa", Name: "Casa Própria", Icon: "home", Color: "from-orange-500 to-amber-400", Description: "Realize o sonho da casa própria"},
	{ID: "presente", Name: "Presente Especial", Icon: "gift", Color: "from-pink-500 to-rose-400", Description: "Surpreenda quem você ama"},
	{ID: "pessoal", Name: "Fundo Pessoal", Icon: "wallet", Color: "from-indigo-500 to-blue-400", Description: "Seus objetivos pessoais"},
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way the dashboard shows it: "R$ 10.000",
// "R$ 1.234,5". Up to three fraction digits are kept.
func FormatBRL(v float64) string {
	return "R$ " + brl.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func findCategory(id string) (domain.GoalCategory, bool) {
	for _, c := range goalCategories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.GoalCategory{}, false
}

func goalsLabel(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 meta ativa"
	}
	return fmt.Sprintf("%d metas ativas", n)
}

// Dashboard returns the categories with their goal counts and the goals
// created in this session.
func (s *SessionService) Dashboard(ctx context.Context, id string) (*domain.DashboardView, error) {
	var view *domain.DashboardView
	_, err := s.apply(ctx, id, "SessionService.Dashboard", func(sess *Session) ([]domain.Event, error) {
		view = buildDashboard(sess)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// buildDashboard assembles the view. Caller holds mu.
func buildDashboard(sess *Session) *domain.DashboardView {
	name := sess.displayName
	if name == "" {
		name = adminDisplayName
	}
	view := &domain.DashboardView{
		Greeting:   "Olá, " + name,
		Categories: make([]domain.CategoryCard, 0, len(goalCategories)),
		Goals:      make([]domain.GoalCard, 0, len(sess.goals)),
	}

	counts := map[string]int{}
	for _, g := range sess.goals {
		counts[g.CategoryID]++
	}
	for _, c := range goalCategories {
		view.Categories = append(view.Categories, domain.CategoryCard{
			GoalCategory: c,
			ActiveGoals:  counts[c.ID],
			GoalsLabel:   goalsLabel(counts[c.ID]),
		})
	}

	for _, g := range sess.goals {
		c, _ := findCategory(g.CategoryID)
		progress := 0.0
		if g.TargetAmount > 0 {
			progress = math.Min(g.CurrentAmount/g.TargetAmount*100, 100)
		}
		view.Goals = append(view.Goals, domain.GoalCard{
			Goal:            g,
			CategoryName:    c.Name,
			Color:           c.Color,
			ProgressPercent: progress,
			CurrentLabel:    FormatBRL(g.CurrentAmount),
			TargetLabel:     "de " + FormatBRL(g.TargetAmount),
		})
	}
	return view
}

// CreateGoal adds a savings goal to the session. All fields are
// required and the target must be a positive number.
func (s *SessionService) CreateGoal(ctx context.Context, id string, req *domain.CreateGoalRequest) (*domain.Goal, []domain.Event, error) {
	var goal *domain.Goal
	resp, err := s.apply(ctx, id, "SessionService.CreateGoal", func(sess *Session) ([]domain.Event, error) {
		name := strings.TrimSpace(req.Name)
		target := strings.TrimSpace(req.TargetAmount)

		errs := domain.FieldErrors{}
		if req.CategoryID == "" {
			errs[fieldGoalCategory] = msgFillAllFields
		}
		if name == "" {
			errs[fieldGoalName] = msgFillAllFields
		}
		if target == "" {
			errs[fieldGoalTarget] = msgFillAllFields
		}
		if len(errs) > 0 {
			return s.formFailed(sess.ID, formGoal, msgFillAllFields, errs)
		}

		category, ok := findCategory(req.CategoryID)
		if !ok {
			return nil, &domain.ErrNotFound{Resource: "category", ID: req.CategoryID}
		}

		amount, ok := parseAmount(target)
		if !ok {
			return s.formFailed(sess.ID, formGoal, msgTargetInvalid, domain.FieldErrors{fieldGoalTarget: msgTargetInvalid})
		}

		g := domain.Goal{
			ID:            uuid.NewString(),
			CategoryID:    category.ID,
			Name:          name,
			TargetAmount:  amount,
			CurrentAmount: 0,
		}
		sess.goals = append(sess.goals, g)
		goal = &g

		e := newEvent(sess.ID, domain.EventGoalCreated, s.now())
		e.Goal = &g
		e.Toast = toast(domain.ToastSuccess, fmt.Sprintf("Meta %q criada com sucesso!", name), "")
		return []domain.Event{e}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return goal, resp.Events, nil
}

// CreateCategory acknowledges a custom category. The category list is
// fixed; only the notice is produced.
func (s *SessionService) CreateCategory(ctx context.Context, id string, req *domain.CreateCategoryRequest) ([]domain.Event, error) {
	resp, err := s.apply(ctx, id, "SessionService.CreateCategory", func(sess *Session) ([]domain.Event, error) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return s.formFailed(sess.ID, formCategory, msgCategoryNameReq, domain.FieldErrors{fieldCategoryName: msgCategoryNameReq})
		}
		e := newEvent(sess.ID, domain.EventCategoryCreated, s.now())
		e.CategoryName = name
		e.Toast = toast(domain.ToastSuccess, fmt.Sprintf("Categoria %q criada com sucesso!", name), "")
		return []domain.Event{e}, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// formFailed is validationFailed with a toast summary.
func (s *SessionService) formFailed(sessionID, form, msg string, errs domain.FieldErrors) ([]domain.Event, error) {
	e := newEvent(sessionID, domain.EventValidationFailed, s.now())
	e.Form = form
	e.FieldErrors = errs
	e.Toast = toast(domain.ToastError, msg, "")
	return []domain.Event{e}, &domain.ErrFieldValidation{Form: form, Message: msg, Errors: errs}
}

// parseAmount accepts "1500", "1500.50" and the pt-BR "1.500,50".
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
