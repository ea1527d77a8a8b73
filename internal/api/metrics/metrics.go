// Package metrics declares the custom Prometheus collectors of the finance
// API. Request-level metrics come from the echoprometheus middleware; the
// collectors here count business outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "financy"

// ── Budgets ───────────────────────────────────────────────────────────────────

// BudgetsResolvedTotal counts budget overview requests that completed.
var BudgetsResolvedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budgets_resolved_total",
		Help:      "Total number of monthly budget overviews computed.",
	},
)

// BudgetStatusTotal counts resolved budgets by tier.
// Label:
//   - status: "On Track", "Warning" or "Over Budget"
var BudgetStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_status_total",
		Help:      "Resolved budgets by status tier.",
	},
	[]string{"status"},
)

// BudgetsSetTotal counts successful budget upserts.
var BudgetsSetTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budgets_set_total",
		Help:      "Total number of budgets created or updated.",
	},
)

// ── Expenses ──────────────────────────────────────────────────────────────────

// ExpensesRecordedTotal counts expense submissions.
// Label:
//   - result: "created" or "replayed" (Idempotency-Key already seen)
var ExpensesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_recorded_total",
		Help:      "Expense submissions, labelled by result.",
	},
	[]string{"result"},
)

// ── Accounts ──────────────────────────────────────────────────────────────────

// AccountDeletionsTotal counts cascading account deletions.
// Labels:
//   - initiator: "admin" or "self"
//   - result: "ok", "not_found" or "error"
var AccountDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_deletions_total",
		Help:      "Cascading account deletions by initiator and result.",
	},
	[]string{"initiator", "result"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "inactive" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through the public endpoint.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of self-registered accounts.",
	},
)
