package i18n

var translationsRU = Translations{
	// App
	"app.title":    "РыбачОК",
	"app.subtitle": "Ваш личный помощник рыболова",
	"app.loading":  "Загрузка...",

	// Auth
	"auth.invalid_credentials": "Неверный email или пароль",
	"auth.email_in_use":        "Пользователь с таким email уже существует",
	"auth.invalid_email":       "Некорректный email адрес",
	"auth.weak_password":       "Слишком слабый пароль",
	"auth.too_many_attempts":   "Слишком много попыток входа. Попробуйте позже",
	"auth.misconfigured":       "Сервис аутентификации не настроен",
	"auth.login_failed":        "Произошла ошибка при входе",
	"auth.register_failed":     "Произошла ошибка при регистрации",

	// Catches
	"catch.unknown_location": "Неизвестное место",

	// Data management
	"data.export_success": "Данные успешно экспортированы",
	"data.export_failed":  "Ошибка при экспорте данных",
	"data.import_failed":  "Ошибка при импорте данных",

	// Generic
	"action.failed": "Не удалось выполнить действие",
}
