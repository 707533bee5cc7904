package assignmenthandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"consulting-crm-backend/db"
	assignmentstore "consulting-crm-backend/lib/assignment/store"
	clientstore "consulting-crm-backend/lib/dicts/client/store"
	consultantstore "consulting-crm-backend/lib/dicts/consultant/store"
	engagementstore "consulting-crm-backend/lib/dicts/engagement/store"
	projectstore "consulting-crm-backend/lib/dicts/project/store"
	licenceprovider "consulting-crm-backend/lib/licence"
	notifyprovider "consulting-crm-backend/lib/notify"
	spaceusersstore "consulting-crm-backend/lib/space/users/store"
	"consulting-crm-backend/lib/utils/helpers"
	initchecker "consulting-crm-backend/lib/utils/init-checker"
	"consulting-crm-backend/models"
	assignmentapimodels "consulting-crm-backend/models/api/assignment"
	dbmodels "consulting-crm-backend/models/db"
)

type Provider interface {
	Create(spaceID, userID string, data assignmentapimodels.AssignmentCreateData) (id string, err error)
	CreateFromRequest(spaceID, userID string, data assignmentapimodels.AssignmentCreateData, staffingRequestID string) (id string, err error)
	GetByID(spaceID, id string) (item assignmentapimodels.AssignmentView, err error)
	Update(spaceID, id string, data assignmentapimodels.AssignmentEditData) error
	Delete(spaceID, id, userID string) error
	List(spaceID string, filter assignmentapimodels.AssignmentFilter) (list []assignmentapimodels.AssignmentView, rowCount int64, err error)

	SubmitForApproval(spaceID, id, userID string) error
	Approve(spaceID, id, userID string, data assignmentapimodels.ApproveData) error
	Reject(spaceID, id, userID string, data assignmentapimodels.RejectData) error

	Activate(spaceID, id, userID string) error
	Hold(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error
	Resume(spaceID, id, userID string) error
	Complete(spaceID, id, userID string, data assignmentapimodels.CompleteData) error
	Terminate(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error
	Cancel(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error

	LogTime(spaceID, id, userID string, data assignmentapimodels.LogTimeData) (hMsg string, err error)
	Extend(spaceID, id, userID string, data assignmentapimodels.ExtendData) (extensionID string, err error)
	DecideExtension(spaceID, id, extensionID, userID string, data assignmentapimodels.ExtensionDecisionData) error

	AddNote(spaceID, id, userID string, data assignmentapimodels.NoteData) (noteID string, err error)
	AddMilestone(spaceID, id, userID string, data assignmentapimodels.MilestoneData) (milestoneID string, err error)
	AttachDocument(spaceID, id, userID, fileName, fileID string, size int64) (docID string, err error)

	Rollover(spaceID, id, userID string, data assignmentapimodels.RolloverData) (newID string, err error)
}

var Instance Provider

func NewHandler(pageLimitCap int) {
	instance := impl{
		store:           assignmentstore.NewInstance(db.DB),
		consultantStore: consultantstore.NewInstance(db.DB),
		clientStore:     clientstore.NewInstance(db.DB),
		projectStore:    projectstore.NewInstance(db.DB),
		engagementStore: engagementstore.NewInstance(db.DB),
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
		licenceProvider: licenceprovider.Instance,
		notifyProvider:  notifyprovider.Instance,
		pageLimitCap:    pageLimitCap,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"licenceProvider", instance.licenceProvider,
		"notifyProvider", instance.notifyProvider,
	)
	Instance = instance
}

type impl struct {
	store           assignmentstore.Provider
	consultantStore consultantstore.Provider
	clientStore     clientstore.Provider
	projectStore    projectstore.Provider
	engagementStore engagementstore.Provider
	spaceUsersStore spaceusersstore.Provider
	licenceProvider licenceprovider.Provider
	notifyProvider  notifyprovider.Provider
	pageLimitCap    int
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("assignment_id", id)
}

func (i impl) checkDependency(spaceID string, data assignmentapimodels.AssignmentData) error {
	consultantRec, err := i.consultantStore.GetByID(spaceID, data.ConsultantID)
	if err != nil {
		return err
	}
	if consultantRec == nil {
		return errors.New("консультант не найден")
	}
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
		if projectRec.ClientID != data.ClientID {
			return errors.New("проект принадлежит другому клиенту")
		}
	}
	if data.EngagementID != "" {
		engagementRec, err := i.engagementStore.GetByID(spaceID, data.EngagementID)
		if err != nil {
			return err
		}
		if engagementRec == nil {
			return errors.New("контракт не найден")
		}
	}
	return nil
}

func (i impl) checkApprovers(spaceID string, levels assignmentapimodels.ApprovalLevels) error {
	for _, lvl := range levels.ApprovalLevels {
		userRec, err := i.spaceUsersStore.GetByID(spaceID, lvl.ApproverID)
		if err != nil {
			return err
		}
		if userRec == nil {
			return errors.Errorf("согласующий на уровне %v не найден", lvl.Level)
		}
	}
	return nil
}

// checkAllocation логирует перегрузку консультанта,
// суммарная загрузка не ограничивается и может превышать 100 процентов
func (i impl) checkAllocation(spaceID, consultantID string, addPercent float64) error {
	total, err := i.store.SumAllocation(spaceID, consultantID)
	if err != nil {
		return err
	}
	if isOverAllocated(total, addPercent) {
		log.
			WithField("space_id", spaceID).
			WithField("consultant_id", consultantID).
			Warnf("суммарная загрузка консультанта превышает 100%%: текущая %v%%, добавляется %v%%", total, addPercent)
	}
	return nil
}

func isOverAllocated(total, addPercent float64) bool {
	return total+addPercent > 100
}

func (i impl) Create(spaceID, userID string, data assignmentapimodels.AssignmentCreateData) (id string, err error) {
	return i.create(spaceID, userID, data, models.SourceManual, nil, nil)
}

func (i impl) CreateFromRequest(spaceID, userID string, data assignmentapimodels.AssignmentCreateData, staffingRequestID string) (id string, err error) {
	return i.create(spaceID, userID, data, models.SourceStaffingRequest, &staffingRequestID, nil)
}

func (i impl) create(spaceID, userID string, data assignmentapimodels.AssignmentCreateData,
	source models.AssignmentSource, staffingRequestID, previousID *string) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = data.Validate()
	if err != nil {
		return "", err
	}
	err = i.checkDependency(spaceID, data.AssignmentData)
	if err != nil {
		return "", err
	}
	err = i.checkApprovers(spaceID, data.ApprovalLevels)
	if err != nil {
		return "", err
	}
	err = i.checkAllocation(spaceID, data.ConsultantID, data.AllocationPercent)
	if err != nil {
		return "", err
	}
	hMsg, ok, err := i.licenceProvider.AllowCreate(spaceID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New(hMsg)
	}
	rec := dbmodels.Assignment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Code:               helpers.NewAssignmentCode(),
		ConsultantID:       data.ConsultantID,
		ClientID:           data.ClientID,
		Title:              data.Title,
		ProposedStart:      data.ProposedStart,
		ProposedEnd:        data.ProposedEnd,
		AllocationPercent:  data.AllocationPercent,
		WeeklyHours:        data.WeeklyHours,
		DailyHours:         data.DailyHours,
		Billable:           data.Billable,
		RateType:           data.RateType,
		ClientRate:         data.ClientRate.Amount,
		ClientRateCurrency: data.ClientRate.Currency,
		CostRate:           data.CostRate.Amount,
		CostRateCurrency:   data.CostRate.Currency,
		BudgetAllocated:    data.BudgetAllocated,
		ExpensesAllocated:  data.ExpensesAllocated,
		EstimatedHours:     data.EstimatedHours,
		Status:             models.AssignmentStatusProposed,
		Source:             source,
		StaffingRequestID:  staffingRequestID,
		PreviousAssignmentID: previousID,
	}
	if data.ProjectID != "" {
		rec.ProjectID = &data.ProjectID
	}
	if data.EngagementID != "" {
		rec.EngagementID = &data.EngagementID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		id, err = txStore.Create(rec)
		if err != nil {
			return err
		}
		for _, lvl := range data.ApprovalLevels.ApprovalLevels {
			_, err = txStore.AddApprovalLevel(dbmodels.AssignmentApprovalLevel{
				BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
				AssignmentID:   id,
				Level:          lvl.Level,
				ApproverID:     lvl.ApproverID,
				Status:         models.AStatusPending,
			})
			if err != nil {
				return err
			}
		}
		return txStore.AddHistory(dbmodels.AssignmentStatusHistory{
			BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
			AssignmentID:   id,
			ToStatus:       models.AssignmentStatusProposed,
			ChangedBy:      userID,
			Reason:         "создание назначения",
		})
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения назначения")
	}
	logger.
		WithField("rec_id", id).
		WithField("assignment_code", rec.Code).
		Info("создано назначение")
	return id, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.Assignment, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("назначение не найдено")
	}
	return rec, nil
}

func (i impl) GetByID(spaceID, id string) (item assignmentapimodels.AssignmentView, err error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return assignmentapimodels.AssignmentView{}, err
	}
	return assignmentapimodels.AssignmentConvert(*rec), nil
}

func (i impl) Update(spaceID, id string, data assignmentapimodels.AssignmentEditData) error {
	logger := i.getLogger(spaceID, id)
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status.IsTerminal() {
		return errors.Errorf("назначение в статусе %v недоступно для изменения", rec.Status.ToHuman())
	}
	updMap := map[string]interface{}{
		"title":              data.Title,
		"proposed_start":     data.ProposedStart,
		"proposed_end":       data.ProposedEnd,
		"allocation_percent": data.AllocationPercent,
		"weekly_hours":       data.WeeklyHours,
		"daily_hours":        data.DailyHours,
		"budget_allocated":   data.BudgetAllocated,
		"budget_remaining":   data.BudgetAllocated - rec.BudgetSpent,
		"expenses_allocated": data.ExpensesAllocated,
		"estimated_hours":    data.EstimatedHours,
		"remaining_hours":    data.EstimatedHours - rec.TotalHoursLogged,
	}
	conflict, err := i.store.UpdateWithVersion(spaceID, id, rec.Version, updMap)
	if err != nil {
		return err
	}
	if conflict {
		return errors.New("назначение было изменено параллельно, повторите запрос")
	}
	logger.Info("обновлено назначение")
	return nil
}

func (i impl) Delete(spaceID, id, userID string) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status == models.AssignmentStatusActive {
		return errors.New("нельзя удалить назначение в работе")
	}
	now := time.Now()
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"is_deleted":   true,
		"deleted_time": now,
		"deleted_by":   userID,
	})
	if err != nil {
		return err
	}
	logger.Info("удалено назначение")
	return nil
}

func (i impl) List(spaceID string, filter assignmentapimodels.AssignmentFilter) (list []assignmentapimodels.AssignmentView, rowCount int64, err error) {
	err = filter.Validate()
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	if rowCount == 0 {
		return []assignmentapimodels.AssignmentView{}, 0, nil
	}
	page, limit := filter.GetPage(i.pageLimitCap)
	recList, err := i.store.List(spaceID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]assignmentapimodels.AssignmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, assignmentapimodels.AssignmentConvert(rec))
	}
	return list, rowCount, nil
}

// changeStatus единственная точка смены статуса, переход проверяется по таблице
func (i impl) changeStatus(rec *dbmodels.Assignment, userID string,
	to models.AssignmentStatus, reason string, extraUpd map[string]interface{}) error {
	if !rec.Status.IsAllowChange(to) {
		return errors.Errorf("недопустимый переход из статуса %v в %v", rec.Status.ToHuman(), to.ToHuman())
	}
	updMap := map[string]interface{}{
		"status": to,
	}
	for k, v := range extraUpd {
		updMap[k] = v
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		conflict, err := txStore.UpdateWithVersion(rec.SpaceID, rec.ID, rec.Version, updMap)
		if err != nil {
			return err
		}
		if conflict {
			return errors.New("назначение было изменено параллельно, повторите запрос")
		}
		return txStore.AddHistory(dbmodels.AssignmentStatusHistory{
			BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: rec.SpaceID},
			AssignmentID:   rec.ID,
			FromStatus:     rec.Status,
			ToStatus:       to,
			ChangedBy:      userID,
			Reason:         reason,
		})
	})
	if err != nil {
		return err
	}
	i.getLogger(rec.SpaceID, rec.ID).
		WithField("from_status", rec.Status).
		WithField("to_status", to).
		Info("изменен статус назначения")
	return nil
}

func (i impl) SubmitForApproval(spaceID, id, userID string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if len(rec.ApprovalLevels) == 0 {
		return errors.New("не задана цепочка согласования")
	}
	_, level := rec.GetCurrentApprovalLevel()
	if level == nil {
		return errors.New("в цепочке согласования нет ожидающих уровней")
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusPendingApproval,
		"отправлено на согласование", map[string]interface{}{
			"current_level": level.Level,
		})
}

func (i impl) Approve(spaceID, id, userID string, data assignmentapimodels.ApproveData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.AssignmentStatusPendingApproval {
		return errors.New("назначение не находится на согласовании")
	}
	isLast, level := rec.GetCurrentApprovalLevel()
	if level == nil {
		return errors.New("в цепочке согласования нет ожидающих уровней")
	}
	if level.Level != data.Level {
		return errors.Errorf("согласование вне очереди: текущий уровень %v", level.Level)
	}
	if level.ApproverID != userID {
		return errors.New("пользователь не является согласующим текущего уровня")
	}
	now := time.Now()
	levelUpd := map[string]interface{}{
		"status":     models.AStatusApproved,
		"comments":   data.Comments,
		"decided_at": now,
	}
	if isLast {
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			txStore := assignmentstore.NewInstance(tx)
			if err := txStore.UpdateApprovalLevel(spaceID, level.ID, levelUpd); err != nil {
				return err
			}
			conflict, err := txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
				"status":            models.AssignmentStatusConfirmed,
				"final_approved":    true,
				"final_approver_id": userID,
				"final_approved_at": now,
			})
			if err != nil {
				return err
			}
			if conflict {
				return errors.New("назначение было изменено параллельно, повторите запрос")
			}
			return txStore.AddHistory(dbmodels.AssignmentStatusHistory{
				BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
				AssignmentID:   id,
				FromStatus:     rec.Status,
				ToStatus:       models.AssignmentStatusConfirmed,
				ChangedBy:      userID,
				Reason:         "согласовано на всех уровнях",
			})
		})
		if err != nil {
			return err
		}
		i.getLogger(spaceID, id).Info("назначение согласовано")
		i.notifyProvider.AssignmentApproved(spaceID, *rec)
		return nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		if err := txStore.UpdateApprovalLevel(spaceID, level.ID, levelUpd); err != nil {
			return err
		}
		next := 0
		for _, lvl := range rec.ApprovalLevels {
			if lvl.Status == models.AStatusPending && lvl.Level > level.Level {
				if next == 0 || lvl.Level < next {
					next = lvl.Level
				}
			}
		}
		conflict, err := txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
			"current_level": next,
		})
		if err != nil {
			return err
		}
		if conflict {
			return errors.New("назначение было изменено параллельно, повторите запрос")
		}
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(spaceID, id).
		WithField("level", level.Level).
		Info("согласован уровень цепочки")
	return nil
}

func (i impl) Reject(spaceID, id, userID string, data assignmentapimodels.RejectData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.AssignmentStatusPendingApproval {
		return errors.New("назначение не находится на согласовании")
	}
	_, current := rec.GetCurrentApprovalLevel()
	if current == nil {
		return errors.New("в цепочке согласования нет ожидающих уровней")
	}
	var target *dbmodels.AssignmentApprovalLevel
	for idx := range rec.ApprovalLevels {
		if rec.ApprovalLevels[idx].Level == data.Level {
			target = &rec.ApprovalLevels[idx]
			break
		}
	}
	if target == nil {
		return errors.Errorf("уровень %v не найден в цепочке", data.Level)
	}
	if target.Status != models.AStatusPending {
		return errors.New("по уровню уже принято решение")
	}
	// отклонение вне очереди доступно только с признаком force
	if target.Level != current.Level && !data.Force {
		return errors.Errorf("отклонение вне очереди: текущий уровень %v", current.Level)
	}
	if target.ApproverID != userID {
		return errors.New("пользователь не является согласующим уровня")
	}
	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		err := txStore.UpdateApprovalLevel(spaceID, target.ID, map[string]interface{}{
			"status":     models.AStatusRejected,
			"comments":   data.Reason,
			"decided_at": now,
		})
		if err != nil {
			return err
		}
		// остальные ожидающие уровни решения уже не требуют
		for _, lvl := range rec.ApprovalLevels {
			if lvl.ID != target.ID && lvl.Status == models.AStatusPending {
				err = txStore.UpdateApprovalLevel(spaceID, lvl.ID, map[string]interface{}{
					"status": models.AStatusSkipped,
				})
				if err != nil {
					return err
				}
			}
		}
		conflict, err := txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
			"status":           models.AssignmentStatusCancelled,
			"rejection_reason": data.Reason,
		})
		if err != nil {
			return err
		}
		if conflict {
			return errors.New("назначение было изменено параллельно, повторите запрос")
		}
		return txStore.AddHistory(dbmodels.AssignmentStatusHistory{
			BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
			AssignmentID:   id,
			FromStatus:     rec.Status,
			ToStatus:       models.AssignmentStatusCancelled,
			ChangedBy:      userID,
			Reason:         data.Reason,
		})
	})
	if err != nil {
		return err
	}
	i.getLogger(spaceID, id).
		WithField("level", target.Level).
		Info("назначение отклонено")
	i.notifyProvider.AssignmentRejected(spaceID, *rec, data.Reason)
	return nil
}

func (i impl) Activate(spaceID, id, userID string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	err = i.checkAllocation(spaceID, rec.ConsultantID, 0)
	if err != nil {
		return err
	}
	extraUpd := map[string]interface{}{}
	if rec.ActualStart == nil {
		extraUpd["actual_start"] = time.Now()
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusActive, "назначение запущено", extraUpd)
}

func (i impl) Hold(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusOnHold, data.Reason, nil)
}

func (i impl) Resume(spaceID, id, userID string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusActive, "работа возобновлена", nil)
}

func (i impl) Complete(spaceID, id, userID string, data assignmentapimodels.CompleteData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	now := time.Now()
	extraUpd := map[string]interface{}{
		"actual_end": now,
	}
	if data.Rating != nil {
		extraUpd["satisfaction_rating"] = *data.Rating
		extraUpd["satisfaction_feedback"] = data.Feedback
		extraUpd["satisfaction_by"] = userID
		extraUpd["satisfaction_at"] = now
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusCompleted, "работа завершена", extraUpd)
}

func (i impl) Terminate(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error {
	if data.Reason == "" {
		return errors.New("не указана причина досрочного прекращения")
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusTerminated, data.Reason, map[string]interface{}{
		"actual_end": time.Now(),
	})
}

func (i impl) Cancel(spaceID, id, userID string, data assignmentapimodels.StatusReasonData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	return i.changeStatus(rec, userID, models.AssignmentStatusCancelled, data.Reason, nil)
}

const logTimeRetries = 3

func (i impl) LogTime(spaceID, id, userID string, data assignmentapimodels.LogTimeData) (hMsg string, err error) {
	logger := i.getLogger(spaceID, id)
	err = data.Validate()
	if err != nil {
		return "", err
	}
	// при параллельном списании повторяем попытку на свежей версии записи
	for attempt := 0; attempt < logTimeRetries; attempt++ {
		rec, err := i.getRec(spaceID, id)
		if err != nil {
			return "", err
		}
		if rec.Status != models.AssignmentStatusActive {
			return "", errors.New("списание времени доступно только по назначению в работе")
		}
		err = rec.ApplyTime(data.Hours, data.Billable, *data.Date)
		if err != nil {
			return "", err
		}
		conflict := false
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			txStore := assignmentstore.NewInstance(tx)
			var txErr error
			conflict, txErr = txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
				"total_hours_logged":        rec.TotalHoursLogged,
				"billable_hours_logged":     rec.BillableHoursLogged,
				"non_billable_hours_logged": rec.NonBillableHoursLogged,
				"remaining_hours":           rec.RemainingHours,
				"budget_spent":              rec.BudgetSpent,
				"budget_remaining":          rec.BudgetRemaining,
				"last_time_entry":           rec.LastTimeEntry,
			})
			if txErr != nil || conflict {
				return txErr
			}
			_, txErr = txStore.AddTimeEntry(dbmodels.AssignmentTimeEntry{
				BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
				AssignmentID:   id,
				ConsultantID:   rec.ConsultantID,
				ClientID:       rec.ClientID,
				EntryDate:      *data.Date,
				Hours:          data.Hours,
				Billable:       data.Billable && rec.Billable,
				Description:    data.Description,
				LoggedBy:       userID,
			})
			return txErr
		})
		if err != nil {
			return "", err
		}
		if conflict {
			logger.WithField("attempt", attempt+1).Info("конфликт версий при списании времени")
			continue
		}
		logger.
			WithField("hours", data.Hours).
			WithField("billable", data.Billable).
			Info("списано время по назначению")
		if rec.Billable && rec.BudgetRemaining < 0 {
			return "бюджет назначения исчерпан", nil
		}
		return "", nil
	}
	return "", errors.New("не удалось списать время из-за параллельных изменений, повторите запрос")
}

func (i impl) Extend(spaceID, id, userID string, data assignmentapimodels.ExtendData) (extensionID string, err error) {
	logger := i.getLogger(spaceID, id)
	err = data.Validate()
	if err != nil {
		return "", err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	switch rec.Status {
	case models.AssignmentStatusConfirmed, models.AssignmentStatusActive, models.AssignmentStatusOnHold:
	default:
		return "", errors.Errorf("продление недоступно в статусе %v", rec.Status.ToHuman())
	}
	if rec.ProposedEnd != nil && !data.NewEndDate.After(*rec.ProposedEnd) {
		return "", errors.New("новая дата окончания должна быть позже текущей")
	}
	ext := rec.ApplyExtension(*data.NewEndDate, data.Reason, userID)
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		extensionID, err = txStore.AddExtension(ext)
		if err != nil {
			return err
		}
		conflict, err := txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
			"proposed_end": rec.ProposedEnd,
		})
		if err != nil {
			return err
		}
		if conflict {
			return errors.New("назначение было изменено параллельно, повторите запрос")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("extension_id", extensionID).
		WithField("new_end_date", data.NewEndDate).
		Info("создан запрос на продление")
	return extensionID, nil
}

func (i impl) DecideExtension(spaceID, id, extensionID, userID string, data assignmentapimodels.ExtensionDecisionData) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	ext, err := i.store.GetExtension(spaceID, extensionID)
	if err != nil {
		return err
	}
	if ext == nil || ext.AssignmentID != id {
		return errors.New("запись о продлении не найдена")
	}
	if ext.Status != models.ExtStatusPending {
		return errors.New("по продлению уже принято решение")
	}
	status := models.ExtStatusApproved
	if !data.Approve {
		status = models.ExtStatusDeclined
	}
	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := assignmentstore.NewInstance(tx)
		err := txStore.UpdateExtension(spaceID, extensionID, map[string]interface{}{
			"status":      status,
			"approver_id": userID,
			"decided_at":  now,
		})
		if err != nil {
			return err
		}
		// при отказе возвращаем прежнюю дату окончания
		if !data.Approve {
			conflict, err := txStore.UpdateWithVersion(spaceID, id, rec.Version, map[string]interface{}{
				"proposed_end": ext.OriginalEndDate,
			})
			if err != nil {
				return err
			}
			if conflict {
				return errors.New("назначение было изменено параллельно, повторите запрос")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.
		WithField("extension_id", extensionID).
		WithField("extension_status", status).
		Info("принято решение по продлению")
	return nil
}

func (i impl) AddNote(spaceID, id, userID string, data assignmentapimodels.NoteData) (noteID string, err error) {
	err = data.Validate()
	if err != nil {
		return "", err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	return i.store.AddNote(dbmodels.AssignmentNote{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		AssignmentID:   rec.ID,
		AuthorID:       userID,
		Text:           data.Text,
	})
}

func (i impl) AddMilestone(spaceID, id, userID string, data assignmentapimodels.MilestoneData) (milestoneID string, err error) {
	err = data.Validate()
	if err != nil {
		return "", err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec.Status.IsTerminal() {
		return "", errors.Errorf("назначение в статусе %v недоступно для изменения", rec.Status.ToHuman())
	}
	return i.store.AddMilestone(dbmodels.AssignmentMilestone{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		AssignmentID:   rec.ID,
		Name:           data.Name,
		TargetDate:     data.TargetDate,
		Status:         models.MilestoneStatusPlanned,
	})
}

func (i impl) AttachDocument(spaceID, id, userID, fileName, fileID string, size int64) (docID string, err error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	docID, err = i.store.AddDocument(dbmodels.AssignmentDocument{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		AssignmentID:   rec.ID,
		UploadedBy:     userID,
		FileName:       fileName,
		FileID:         fileID,
		Size:           size,
	})
	if err != nil {
		return "", err
	}
	i.getLogger(spaceID, id).
		WithField("file_name", fileName).
		Info("приложен документ к назначению")
	return docID, nil
}

// Rollover создает новое назначение на основе завершенного,
// цепочка согласования копируется и проходится заново
func (i impl) Rollover(spaceID, id, userID string, data assignmentapimodels.RolloverData) (newID string, err error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.AssignmentStatusCompleted {
		return "", errors.New("перенос доступен только по завершенному назначению")
	}
	createData := assignmentapimodels.AssignmentCreateData{
		AssignmentData: assignmentapimodels.AssignmentData{
			ConsultantID:      rec.ConsultantID,
			ClientID:          rec.ClientID,
			Title:             rec.Title,
			ProposedEnd:       data.NewEndDate,
			AllocationPercent: rec.AllocationPercent,
			WeeklyHours:       rec.WeeklyHours,
			DailyHours:        rec.DailyHours,
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
			BudgetAllocated:   rec.BudgetAllocated,
			ExpensesAllocated: rec.ExpensesAllocated,
			EstimatedHours:    rec.EstimatedHours,
		},
	}
	if rec.ProjectID != nil {
		createData.ProjectID = *rec.ProjectID
	}
	if rec.EngagementID != nil {
		createData.EngagementID = *rec.EngagementID
	}
	start := time.Now()
	if rec.ActualEnd != nil {
		start = *rec.ActualEnd
	}
	createData.ProposedStart = &start
	for _, lvl := range rec.ApprovalLevels {
		createData.ApprovalLevels.ApprovalLevels = append(createData.ApprovalLevels.ApprovalLevels,
			assignmentapimodels.ApprovalLevelData{
				Level:      lvl.Level,
				ApproverID: lvl.ApproverID,
			})
	}
	newID, err = i.create(spaceID, userID, createData, models.SourceRollover, nil, &rec.ID)
	if err != nil {
		return "", err
	}
	i.getLogger(spaceID, id).
		WithField("new_assignment_id", newID).
		Info("выполнен перенос назначения")
	return newID, nil
}
