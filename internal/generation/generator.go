package generation

import (
	"context"
	"fmt"

	"aiforge_backend/internal/models"
)

// Result - ответ внешнего генеративного сервиса: результат и его стоимость
// в кредитах категории.
type Result struct {
	Output string
	Cost   int
}

// Generator - внешний коллаборатор. Реальные вызовы AI-провайдеров живут
// за этим интерфейсом; бэкенду важны только успех/ошибка и стоимость.
type Generator interface {
	Generate(ctx context.Context, category models.CreditCategory, prompt string) (*Result, error)
}

// EstimateCost считает стоимость запроса до обращения к провайдеру.
// Скрипт метрируется в символах, остальные категории - по одному кредиту.
func EstimateCost(category models.CreditCategory, prompt string) int {
	if category == models.CreditScript {
		return len(prompt)
	}
	return 1
}

// StubGenerator - заглушка для разработки и тестов
type StubGenerator struct{}

func (g *StubGenerator) Generate(ctx context.Context, category models.CreditCategory, prompt string) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return &Result{
		Output: fmt.Sprintf("stub %s generation for prompt of %d chars", category, len(prompt)),
		Cost:   EstimateCost(category, prompt),
	}, nil
}
