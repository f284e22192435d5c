package handler

import (
	"bytes"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
	"rmod/internal/testutil"
)

func echo(rm *domain.RestoreModifier) *domain.RestoreModifier {
	return rm
}

func newPrinter() (*output.Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return output.NewPrinter(&out, &errOut), &out, &errOut
}

func newStore() (*core.ModifierStore, *testutil.MockRestoreModifierRepository) {
	repository := new(testutil.MockRestoreModifierRepository)
	return core.NewModifierStore(repository, domain.RestoreModifierNamespace, core.NewTransformer()), repository
}

// portsModifier bumps port 80 to 81 on services.
func portsModifier() domain.Modifier {
	return domain.Modifier{
		Name: "ports",
		Selectors: []domain.Selector{
			{ID: "svc", Criteria: []domain.Criterion{domain.KindCriterion{Pattern: "Service"}}},
		},
		Actions: []domain.Action{
			domain.ModifyAction{Selector: "svc", Path: "/spec/ports/0/port", Value: int64(80), NewValue: int64(81), Parameters: domain.ModifyExact},
		},
	}
}

func storedPortsModifier() *domain.RestoreModifier {
	rm := domain.ToRestoreModifier(portsModifier(), domain.RestoreModifierNamespace)
	rm.ResourceVersion = "7"
	return rm
}

const portsModifierYAML = `apiVersion: k8s.cv.io/v1
kind: RestoreModifier
metadata:
  name: ports
  namespace: cv-config
selectors:
  - id: svc
    kind: Service
modifiers:
  - selectorId: svc
    action: Modify
    path: /spec/ports/0/port
    value: 80
    newValue: 81
    parameters: Exact
`

const manifestsYAML = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: nginx-deploy
  namespace: web
spec:
  replicas: 3
---
apiVersion: v1
kind: Service
metadata:
  name: nginx
  namespace: web
spec:
  ports:
    - port: 80
`
