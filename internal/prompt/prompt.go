// Package prompt builds the per-model prompts sent to the LLM.
package prompt

import (
	"fmt"
	"strings"

	"github.com/kuru2388/django-autoapi/internal/registry"
)

const serializerTemplate = `You are given a Django model definition.

App label: %s
Model name: %s

Fields:
%s

Task:
Write a Django REST Framework ModelSerializer named %sSerializer for this model.

Rules:
- Import from rest_framework import serializers.
- Use serializers.ModelSerializer.
- Define Meta.model = %s.
- Set Meta.fields = "__all__".
- Do NOT include any explanation or comments.
- Output ONLY valid Python code that can be appended to a serializers module.
`

// Serializer builds the user prompt asking for a DRF ModelSerializer, with
// one "- name: type" bullet per field in declaration order.
func Serializer(appLabel, modelName string, fields []registry.Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Name, f.Type))
	}
	fieldList := strings.Join(lines, "\n")
	return fmt.Sprintf(serializerTemplate, appLabel, modelName, fieldList, modelName, modelName)
}
