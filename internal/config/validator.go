package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/lexicon/internal/display"
)

var (
	themeValues = []string{string(display.ThemeLight), string(display.ThemeDark), ThemeSystem}
	fontValues  = []string{string(display.FontSerif), string(display.FontSans), string(display.FontMono)}
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, values := range map[string][]string{
		"theme": themeValues,
		"font":  fontValues,
	} {
		if err := registerEnum(validate, trans, tag, values); err != nil {
			return nil, nil, err
		}
	}

	return validate, trans, nil
}

// registerEnum adds a rule accepting only values, reported with the allowed list.
func registerEnum(validate *validator.Validate, trans ut.Translator, tag string, values []string) error {
	if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return slices.Contains(values, fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", tag, err)
	}

	message := fmt.Sprintf("{0} must be one of [%s]", strings.Join(values, " "))
	if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return fmt.Errorf("failed to register %s translation: %w", tag, err)
	}
	return nil
}
