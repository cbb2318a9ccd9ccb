package routeapimodels

import (
	"fmt"

	"doc-flow-backend/models"
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
)

type RouteModelData struct {
	Name  string                  `json:"name"`
	Steps []RouteStepTemplateData `json:"steps"`
}

func (d RouteModelData) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название модели маршрута")
	}
	if len(d.Steps) == 0 {
		return errors.New("модель маршрута должна содержать хотя бы один шаг")
	}
	for k, step := range d.Steps {
		if err := step.Validate(); err != nil {
			return errors.Wrapf(err, "шаг %v", k+1)
		}
	}
	return nil
}

type RouteStepTemplateData struct {
	Type        models.RouteStepType  `json:"type"`
	Name        string                `json:"name"`
	Target      RouteTargetData       `json:"target"`
	Transitions []RouteTransitionData `json:"transitions"`
}

func (d RouteStepTemplateData) Validate() error {
	if !d.Type.IsValid() {
		return errors.Errorf("неизвестный тип шага: %v", d.Type)
	}
	if d.Name == "" {
		return errors.New("не указано название шага")
	}
	if d.Target.Name == "" {
		return errors.New("не указан исполнитель шага")
	}
	if !d.Target.Type.IsValid() {
		return errors.Errorf("неизвестный тип исполнителя: %v", d.Target.Type)
	}
	if len(d.Transitions) == 0 {
		return errors.New("шаг должен содержать хотя бы один переход")
	}
	for _, transition := range d.Transitions {
		if transition.Name == "" {
			return errors.New("не указано имя перехода")
		}
		for _, action := range transition.Actions {
			if !action.Type.IsValid() {
				return errors.Errorf("неизвестный тип действия: %v", action.Type)
			}
			if action.TagID == "" {
				return errors.New("не указана метка для действия перехода")
			}
		}
	}
	return nil
}

type RouteTargetData struct {
	Name string                 `json:"name"`
	Type models.RouteTargetType `json:"type"`
}

type RouteTransitionData struct {
	Name    string            `json:"name"`
	Actions []RouteActionData `json:"actions"`
}

type RouteActionData struct {
	Type  models.RouteActionType `json:"type"`
	TagID string                 `json:"tag_id"`
}

type RouteModelView struct {
	RouteModelData
	ID string `json:"id"`
}

func (d RouteModelData) ToSteps() dbmodels.RouteStepTemplates {
	steps := make(dbmodels.RouteStepTemplates, 0, len(d.Steps))
	for _, step := range d.Steps {
		transitions := make([]dbmodels.RouteTransition, 0, len(step.Transitions))
		for _, transition := range step.Transitions {
			actions := make([]dbmodels.RouteAction, 0, len(transition.Actions))
			for _, action := range transition.Actions {
				actions = append(actions, dbmodels.RouteAction{
					Type:  action.Type,
					TagID: action.TagID,
				})
			}
			transitions = append(transitions, dbmodels.RouteTransition{
				Name:    transition.Name,
				Actions: actions,
			})
		}
		steps = append(steps, dbmodels.RouteStepTemplate{
			Type: step.Type,
			Name: step.Name,
			Target: dbmodels.RouteTarget{
				Name: step.Target.Name,
				Type: step.Target.Type,
			},
			Transitions: transitions,
		})
	}
	return steps
}

func RouteModelConvert(rec dbmodels.RouteModel) RouteModelView {
	steps := make([]RouteStepTemplateData, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		transitions := make([]RouteTransitionData, 0, len(step.Transitions))
		for _, transition := range step.Transitions {
			actions := make([]RouteActionData, 0, len(transition.Actions))
			for _, action := range transition.Actions {
				actions = append(actions, RouteActionData{
					Type:  action.Type,
					TagID: action.TagID,
				})
			}
			transitions = append(transitions, RouteTransitionData{
				Name:    transition.Name,
				Actions: actions,
			})
		}
		steps = append(steps, RouteStepTemplateData{
			Type: step.Type,
			Name: step.Name,
			Target: RouteTargetData{
				Name: step.Target.Name,
				Type: step.Target.Type,
			},
			Transitions: transitions,
		})
	}
	return RouteModelView{
		RouteModelData: RouteModelData{
			Name:  rec.Name,
			Steps: steps,
		},
		ID: rec.ID,
	}
}

func (d RouteStepTemplateData) String() string {
	return fmt.Sprintf("%v (%v)", d.Name, d.Type)
}
