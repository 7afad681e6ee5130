package auditrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fleetdispatch/internal/adapters/out/postgres"
	"fleetdispatch/internal/adapters/out/postgres/auditrepo"
	"fleetdispatch/internal/core/domain/model/audit"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type AuditLogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	log       *auditrepo.GormAuditLog
}

func (suite *AuditLogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.log = auditrepo.NewGormAuditLog(db)
}

func (suite *AuditLogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE alerts, workflows").Error)
}

func (suite *AuditLogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AuditLogIntegrationTestSuite) TestAlertsNewestFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	for _, message := range []string{"first", "second", "third"} {
		suite.Require().NoError(suite.log.AppendAlert(ctx, audit.NewAlert(audit.SL2, message, "P-1", "T-1", now)))
	}

	alerts, err := suite.log.ListAlerts(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(alerts, 2)
	suite.Equal("third", alerts[0].Message)
	suite.Equal("second", alerts[1].Message)
	suite.Equal(audit.SL2, alerts[0].Severity)
	suite.True(now.Equal(alerts[0].Timestamp))

	all, err := suite.log.ListAlerts(ctx, 0)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *AuditLogIntegrationTestSuite) TestWorkflowRoundTripAndReplay() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first := audit.NewWorkflow(audit.BatchAssign, audit.Automation, map[string]string{"truckID": "T-1"}, now)
	first.BatchID = "B-1"
	first.Pass("CapacityCheck", "120 kg fits", now)
	first.Complete(now)

	other := audit.NewWorkflow(audit.AssignParcel, audit.Manual, nil, now)
	other.Reject("checkUniqueness", "Parcel already assigned", now)

	second := audit.NewWorkflow(audit.BatchAssign, audit.Automation, map[string]string{"truckID": "T-2"}, now)
	second.BatchID = "B-1"
	second.Complete(now)

	for _, w := range []*audit.Workflow{first, other, second} {
		suite.Require().NoError(suite.log.AppendWorkflow(ctx, *w))
	}

	replay, err := suite.log.WorkflowsByBatch(ctx, "B-1")
	suite.Require().NoError(err)
	suite.Require().Len(replay, 2)
	suite.True(first.ID.IsEqual(replay[0].ID))
	suite.Equal("T-1", replay[0].Input["truckID"])
	suite.Require().Len(replay[0].Steps, 1)
	suite.Equal(audit.Succeeded, replay[0].Steps[0].Status)
	suite.True(second.ID.IsEqual(replay[1].ID))

	latest, err := suite.log.ListWorkflows(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(latest, 1)
	suite.True(second.ID.IsEqual(latest[0].ID))

	missing, err := suite.log.WorkflowsByBatch(ctx, "B-unknown")
	suite.Require().NoError(err)
	suite.Empty(missing)

	stats, err := suite.log.Stats(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, stats.Alerts)
	suite.Equal(3, stats.Workflows)
}

func TestAuditLogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuditLogIntegrationTestSuite))
}
