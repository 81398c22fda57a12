package observability

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "groupfit",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
	usersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "groupfit",
		Name:      "users_registered_total",
		Help:      "Accounts created since process start.",
	})
	activitiesLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "groupfit",
		Name:      "activities_logged_total",
		Help:      "Activities logged since process start.",
	})
	groupsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "groupfit",
		Name:      "groups_created_total",
		Help:      "Groups created since process start.",
	})
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		usersRegisteredTotal,
		activitiesLoggedTotal,
		groupsCreatedTotal,
	)
}

// HTTPMetrics counts every handled request by registered route.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		httpRequestsTotal.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()

		return err
	}
}

// RecordUserRegistered bumps the account creation counter.
func RecordUserRegistered() {
	usersRegisteredTotal.Inc()
}

// RecordActivityLogged bumps the activity counter.
func RecordActivityLogged() {
	activitiesLoggedTotal.Inc()
}

// RecordGroupCreated bumps the group counter.
func RecordGroupCreated() {
	groupsCreatedTotal.Inc()
}
