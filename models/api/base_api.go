package apimodels

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

// ValidationResponse - ответ с ошибками валидации по полям
type ValidationResponse struct {
	Response
	Fields map[string]string `json:"fields"` // [поле]сообщение
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewValidationError(message string, fields map[string]string) ValidationResponse {
	return ValidationResponse{
		Response: NewError(message),
		Fields:   fields,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type IDResponse struct {
	ID string `json:"id"`
}
