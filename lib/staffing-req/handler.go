package staffingreqhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"consulting-crm-backend/db"
	assignmenthandler "consulting-crm-backend/lib/assignment"
	clientstore "consulting-crm-backend/lib/dicts/client/store"
	projectstore "consulting-crm-backend/lib/dicts/project/store"
	staffingreqstore "consulting-crm-backend/lib/staffing-req/store"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	"consulting-crm-backend/models"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
	staffingapimodels "consulting-crm-backend/models/api/staffing"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID, userID string, data staffingapimodels.StaffingRequestData) (id string, err error)
	GetByID(spaceID, id string) (item staffingapimodels.StaffingRequestView, err error)
	Update(spaceID, id string, data staffingapimodels.StaffingRequestData) error
	Delete(spaceID, id string) error
	List(spaceID string, filter staffingapimodels.StaffingRequestFilter) (list []staffingapimodels.StaffingRequestView, rowCount int64, err error)
	Open(spaceID, id string) error
	Cancel(spaceID, id string) error
	// CreateAssignment закрывает запрос созданием назначения на консультанта
	CreateAssignment(spaceID, id, userID string, data staffingapimodels.CreateAssignmentData) (assignmentID string, err error)
}

var Instance Provider

func NewHandler(pageLimitCap int) {
	instance := impl{
		store:             staffingreqstore.NewInstance(db.DB),
		clientStore:       clientstore.NewInstance(db.DB),
		projectStore:      projectstore.NewInstance(db.DB),
		assignmentHandler: assignmenthandler.Instance,
		pageLimitCap:      pageLimitCap,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"assignmentHandler", instance.assignmentHandler,
	)
	Instance = instance
}

type impl struct {
	store             staffingreqstore.Provider
	clientStore       clientstore.Provider
	projectStore      projectstore.Provider
	assignmentHandler assignmenthandler.Provider
	pageLimitCap      int
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("staffing_request_id", id)
}

func (i impl) checkDependency(spaceID string, data staffingapimodels.StaffingRequestData) error {
	clientRec, err := i.clientStore.GetByID(spaceID, data.ClientID)
	if err != nil {
		return err
	}
	if clientRec == nil {
		return errors.New("клиент не найден")
	}
	if data.ProjectID != "" {
		projectRec, err := i.projectStore.GetByID(spaceID, data.ProjectID)
		if err != nil {
			return err
		}
		if projectRec == nil {
			return errors.New("проект не найден")
		}
	}
	return nil
}

func (i impl) Create(spaceID, userID string, data staffingapimodels.StaffingRequestData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = data.Validate()
	if err != nil {
		return "", err
	}
	err = i.checkDependency(spaceID, data)
	if err != nil {
		return "", err
	}
	rec := dbmodels.StaffingRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		AuthorID:            userID,
		ClientID:            data.ClientID,
		RoleTitle:           data.RoleTitle,
		Grade:               data.Grade,
		Requirements:        data.Requirements,
		RequestedAllocation: data.RequestedAllocation,
		RequestedStart:      data.RequestedStart,
		RequestedEnd:        data.RequestedEnd,
		Billable:            data.Billable,
		RateType:            data.RateType,
		ClientRate:          data.ClientRate.Amount,
		ClientRateCurrency:  data.ClientRate.Currency,
		CostRate:            data.CostRate.Amount,
		CostRateCurrency:    data.CostRate.Currency,
		BudgetAllocated:     data.BudgetAllocated,
		EstimatedHours:      data.EstimatedHours,
		Urgency:             data.Urgency,
		Status:              models.SRStatusDraft,
	}
	if data.ProjectID != "" {
		rec.ProjectID = &data.ProjectID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("role_title", rec.RoleTitle).
		Info("создан запрос на подбор")
	return id, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.StaffingRequest, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("запрос на подбор не найден")
	}
	return rec, nil
}

func (i impl) GetByID(spaceID, id string) (item staffingapimodels.StaffingRequestView, err error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return staffingapimodels.StaffingRequestView{}, err
	}
	return staffingapimodels.StaffingRequestConvert(*rec), nil
}

func (i impl) Update(spaceID, id string, data staffingapimodels.StaffingRequestData) error {
	logger := i.getLogger(spaceID, id)
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.SRStatusDraft && rec.Status != models.SRStatusOpen {
		return errors.Errorf("запрос в статусе %v недоступен для изменения", rec.Status.ToHuman())
	}
	err = i.checkDependency(spaceID, data)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"role_title":           data.RoleTitle,
		"grade":                data.Grade,
		"requirements":         data.Requirements,
		"requested_allocation": data.RequestedAllocation,
		"requested_start":      data.RequestedStart,
		"requested_end":        data.RequestedEnd,
		"billable":             data.Billable,
		"rate_type":            data.RateType,
		"client_rate":          data.ClientRate.Amount,
		"client_rate_currency": data.ClientRate.Currency,
		"cost_rate":            data.CostRate.Amount,
		"cost_rate_currency":   data.CostRate.Currency,
		"budget_allocated":     data.BudgetAllocated,
		"estimated_hours":      data.EstimatedHours,
		"urgency":              data.Urgency,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен запрос на подбор")
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status == models.SRStatusFulfilled {
		return errors.New("нельзя удалить закрытый назначением запрос")
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		return err
	}
	logger.Info("удален запрос на подбор")
	return nil
}

func (i impl) List(spaceID string, filter staffingapimodels.StaffingRequestFilter) (list []staffingapimodels.StaffingRequestView, rowCount int64, err error) {
	err = filter.Validate()
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	if rowCount == 0 {
		return []staffingapimodels.StaffingRequestView{}, 0, nil
	}
	page, limit := filter.GetPage(i.pageLimitCap)
	recList, err := i.store.List(spaceID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]staffingapimodels.StaffingRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, staffingapimodels.StaffingRequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Open(spaceID, id string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.SRStatusDraft {
		return errors.Errorf("открыть можно только черновик, текущий статус %v", rec.Status.ToHuman())
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"status": models.SRStatusOpen,
	})
	if err != nil {
		return err
	}
	i.getLogger(spaceID, id).Info("запрос на подбор открыт")
	return nil
}

func (i impl) Cancel(spaceID, id string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status == models.SRStatusFulfilled {
		return errors.New("нельзя отменить закрытый назначением запрос")
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"status": models.SRStatusCancelled,
	})
	if err != nil {
		return err
	}
	i.getLogger(spaceID, id).Info("запрос на подбор отменен")
	return nil
}

func (i impl) CreateAssignment(spaceID, id, userID string, data staffingapimodels.CreateAssignmentData) (assignmentID string, err error) {
	logger := i.getLogger(spaceID, id)
	err = data.Validate()
	if err != nil {
		return "", err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.SRStatusOpen {
		return "", errors.Errorf("назначение создается только по открытому запросу, текущий статус %v", rec.Status.ToHuman())
	}
	createData := assignmentapimodels.AssignmentCreateData{
		AssignmentData: assignmentapimodels.AssignmentData{
			ConsultantID:      data.ConsultantID,
			ClientID:          rec.ClientID,
			Title:             rec.RoleTitle,
			ProposedStart:     rec.RequestedStart,
			ProposedEnd:       rec.RequestedEnd,
			AllocationPercent: rec.RequestedAllocation,
			Billable:          rec.Billable,
			RateType:          rec.RateType,
			ClientRate: assignmentapimodels.RateData{
				Amount:   rec.ClientRate,
				Currency: rec.ClientRateCurrency,
			},
			CostRate: assignmentapimodels.RateData{
				Amount:   rec.CostRate,
				Currency: rec.CostRateCurrency,
			},
			BudgetAllocated: rec.BudgetAllocated,
			EstimatedHours:  rec.EstimatedHours,
		},
		ApprovalLevels: assignmentapimodels.ApprovalLevels{
			ApprovalLevels: data.ApprovalLevels,
		},
	}
	if rec.ProjectID != nil {
		createData.ProjectID = *rec.ProjectID
	}
	assignmentID, err = i.assignmentHandler.CreateFromRequest(spaceID, userID, createData, id)
	if err != nil {
		return "", err
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"status": models.SRStatusFulfilled,
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("assignment_id", assignmentID).
		Info("запрос на подбор закрыт назначением")
	return assignmentID, nil
}
