package service

var quotes = []string{
	"Верь в себя, и ты уже на полпути к успеху!",
	"Каждый день - это новая возможность.",
	"Действуй сейчас. Не жди идеального момента.",
	"Твои мечты не имеют срока годности.",
	"Путь в тысячу миль начинается с первого шага.",
	"Успех - это способность идти от неудачи к неудаче, не теряя энтузиазма.",
	"Образование - это не подготовка к жизни; образование - это и есть жизнь.",
	"Знание - сила, учение - свет!",
	"Никогда не поздно стать тем, кем ты мог бы быть.",
	"Сложнее всего начать действовать, все остальное зависит только от упорства.",
	"Чтобы дойти до цели, надо прежде всего идти.",
	"Учитесь так, словно вы постоянно ощущаете нехватку своих знаний.",
	"Образование — это то, что остаётся после того, как забывается всё выученное в школе.",
	"Усердие - мать успеха.",
	"Каждая ошибка - это еще один шаг к успеху.",
	"Чем больше знаешь, тем больше можешь.",
	"Ваше будущее создается тем, что вы делаете сегодня.",
	"Инвестиции в знания всегда приносят наибольший доход.",
	"Чтение - вот лучшее учение!",
	"Учиться и не размышлять - напрасно терять время.",
	"Чем умнее человек, тем легче он признает себя дураком.",
	"Знание есть сила, сила есть знание.",
	"Чтобы достичь цели, нужно прежде всего к ней идти.",
	"Великие дела начинаются с малого.",
	"Дорогу осилит идущий.",
}
