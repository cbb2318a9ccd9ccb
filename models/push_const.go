package models

import "fmt"

type PushCode string

type PushTpl struct {
	Name  string
	Title string
	Msg   string
}

var PushCodeMap = map[PushCode]PushTpl{
	PushRouteStepReady: {Name: "Шаг маршрута ожидает обработки", Title: "Требуется ваше действие", Msg: "Документ «%v» ожидает вашего действия на шаге «%v»."},
	PushRouteCanceled:  {Name: "Маршрут отменён", Title: "Маршрут отменён", Msg: "Маршрут «%v» по документу «%v» был отменён."},
}

const (
	PushRouteStepReady PushCode = "PushRouteStepReady"
	PushRouteCanceled  PushCode = "PushRouteCanceled"
)

func (c PushCode) BuildMsg(args ...interface{}) (title, msg string) {
	tpl, ok := PushCodeMap[c]
	if !ok {
		return "", ""
	}
	return tpl.Title, fmt.Sprintf(tpl.Msg, args...)
}
