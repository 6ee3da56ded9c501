package seed

import "advertBack/internal/models"

var regions = []models.Region{
	{Name: "Минская область", CityName: "Минск"},
	{Name: "Минская область", CityName: "Борисов"},
	{Name: "Минская область", CityName: "Солигорск"},
	{Name: "Минская область", CityName: "Молодечно"},
	{Name: "Гомельская область", CityName: "Гомель"},
	{Name: "Гомельская область", CityName: "Мозырь"},
	{Name: "Гомельская область", CityName: "Жлобин"},
	{Name: "Могилевская область", CityName: "Могилев"},
	{Name: "Могилевская область", CityName: "Бобруйск"},
	{Name: "Могилевская область", CityName: "Осиповичи"},
	{Name: "Витебская область", CityName: "Витебск"},
	{Name: "Витебская область", CityName: "Орша"},
	{Name: "Витебская область", CityName: "Новополоцк"},
	{Name: "Гродненская область", CityName: "Гродно"},
	{Name: "Гродненская область", CityName: "Лида"},
	{Name: "Гродненская область", CityName: "Слоним"},
	{Name: "Брестская область", CityName: "Брест"},
	{Name: "Брестская область", CityName: "Барановичи"},
	{Name: "Брестская область", CityName: "Пинск"},
}

type taxonomyEntry struct {
	Name string
	Subs []string
}

var taxonomy = []taxonomyEntry{
	{"Транспорт", []string{"Автомобили", "Мотоциклы", "Спецтехника", "Запчасти"}},
	{"Недвижимость", []string{"Квартиры", "Комнаты", "Дома, дачи", "Гаражи", "Коммерческая"}},
	{"Электроника", []string{"Телефоны", "Планшеты", "Ноутбуки", "Компьютеры", "Фототехника"}},
	{"Личные вещи", []string{"Одежда, обувь", "Часы и украшения", "Товары для детей"}},
	{"Для дома и дачи", []string{"Бытовая техника", "Мебель", "Ремонт и строительство", "Растения"}},
	{"Хобби и отдых", []string{"Спорт и отдых", "Книги", "Музыкальные инструменты", "Велосипеды"}},
	{"Животные", []string{"Собаки", "Кошки", "Птицы", "Аквариум"}},
}

type account struct {
	Email    string
	Password string
	Name     string
	Role     string
	Rating   float64
}

var accounts = []account{
	{Email: "admin@test.ru", Password: "Admin123!", Name: "Администратор", Role: models.RoleAdmin, Rating: 5.0},
	{Email: "user@test.ru", Password: "User123!", Name: "Тестовый Юзер", Role: models.RoleUser, Rating: 4.0},
}

const botPassword = "BotPass123!"

var firstNames = []string{
	"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья", "Кирилл", "Михаил",
	"Анна", "Мария", "Елена", "Дарья", "Алина", "Ирина", "Екатерина", "Ольга", "Юлия", "Татьяна",
}

var lastNames = []string{
	"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров", "Соколов", "Михайлов", "Новиков", "Фёдоров",
	"Морозов", "Волков", "Алексеев", "Лебедев", "Семёнов", "Егоров", "Павлов", "Козлов", "Степанов",
}

// titles maps a subcategory name to the item names used for its ads.
var titles = map[string][]string{
	"Автомобили": {"Lada Vesta", "Hyundai Solaris", "Kia Rio", "Volkswagen Polo", "Skoda Octavia", "Toyota Camry", "Ford Focus"},
	"Квартиры":   {"1-к квартира", "2-к квартира", "3-к квартира", "Студия", "Комната", "Евротрешка"},
	"Телефоны":   {"iPhone 11", "iPhone XR", "Samsung A51", "Xiaomi Redmi 9", "Honor 10", "Poco X3", "Realme GT"},
	"Ноутбуки":   {"Asus VivoBook", "Acer Aspire", "Lenovo Legion", "HP Pavilion", "MacBook Air", "MSI Modern"},
	"Велосипеды": {"Stels Navigator", "Stern Motion", "Merida Big.Nine", "GT Avalanche", "Cube Aim"},
	"Мебель":     {"Диван угловой", "Шкаф ИКЕА", "Кровать с матрасом", "Стол кухонный", "Стулья (4 шт)"},
}

var titleVariations = []string{"Срочно", "Торг", "Новое", "БУ", "Идеальное состояние", "Полный комплект", "На гарантии"}

const descriptionTemplate = "Продаю %s. Состояние отличное. Пользовался бережно. Возможен небольшой торг при осмотре. Звоните с 10 до 22."
