package initchecker

import "fmt"

// CheckInit принимает пары (имя, зависимость) и роняет процесс на старте,
// если какая-то из зависимостей не была инициализирована
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечетное число аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("CheckInit: имя зависимости должно быть строкой")
		}
		if pairs[i+1] == nil {
			panic(fmt.Sprintf("не инициализирована зависимость %s", name))
		}
	}
}
