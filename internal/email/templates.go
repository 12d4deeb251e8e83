package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Встроенные шаблоны писем
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
)

var defaultTemplates = map[string]string{
	TemplateVerification: `<html><body>
<h2>Подтверждение email</h2>
<p>Ваш код подтверждения: <strong>{{.Code}}</strong></p>
<p>Код действует 15 минут. Если вы не регистрировались, просто проигнорируйте это письмо.</p>
</body></html>`,

	TemplatePasswordReset: `<html><body>
<h2>Сброс пароля</h2>
<p>Ваш код для сброса пароля: <strong>{{.Code}}</strong></p>
<p>Код одноразовый. Если вы не запрашивали сброс, проигнорируйте это письмо.</p>
</body></html>`,
}

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, tpl := range defaultTemplates {
		if err := tm.AddTemplate(name, tpl); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
