package analysis

import "fmt"

const visitDateLayout = "02.01.2006"

// ProcedureNames are the session counters extracted into the procedures object.
var ProcedureNames = []string{"HILT", "SIS", "УВТ", "ИРТ", "ВТЭС", "PRP", "Кинезиотерапия"}

const extractionPromptTemplate = `Ты - медицинский ассистент. Твоя задача - строго извлечь факты из транскрипции приема врача.
Ничего не придумывай. Если информации нет, пиши "Не указано".
Верни ответ только в формате JSON со следующими полями:
- patientName (ФИО пациента)
- dob (Дата рождения, если есть)
- visitDate (Дата визита, сегодня: %s)
- complaints (Жалобы пациента)
- anamnesis (Анамнез)
- diagnosis (Предварительный диагноз)
- treatment (Общий план лечения текстом)
- recommendations (Рекомендации)
- procedures (объект с количеством сеансов каждой процедуры, если упомянуто в тексте):
  {
    "HILT": <число или 0>,
    "SIS": <число или 0>,
    "УВТ": <число или 0>,
    "ИРТ": <число или 0>,
    "ВТЭС": <число или 0>,
    "PRP": <число или 0>,
    "Кинезиотерапия": <число или 0>
  }

Для поля procedures: ищи в тексте упоминания процедур и числа рядом с ними (например "13 лазеров" = HILT:13, "12 магнитов" = SIS:12, "6 УВТ" = УВТ:6, "4 ИРТ" = ИРТ:4, "ФТЭС/ВТЭС" = ВТЭС, "ПРП/PRP" = PRP).
Если процедура не упомянута - ставь 0.

Используй русский язык.`

func buildExtractionPrompt(visitDate string) string {
	return fmt.Sprintf(extractionPromptTemplate, visitDate)
}
